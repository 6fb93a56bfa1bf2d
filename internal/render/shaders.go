package render

// Uniform names. The lit shader's matrices are set by the sequencer; raylib's own
// matModel/matView/mvp uniforms are not used.
const (
	uniModel          = "model"
	uniView           = "view"
	uniProj           = "proj"
	uniDistort        = "distort"
	uniLightMVP       = "lightMVP"
	uniTexture        = "tex"
	uniShadowMap      = "shadowMap"
	uniCameraPosition = "cameraPosition"
	uniLightPosition  = "lightPosition"
	uniEnableShading  = "enableShading"
	uniCloud          = "cloud"
	uniCloudModel     = "cloudModel"
	uniDepthMVP       = "depthMVP"
)

// litVS and litFS draw a textured body. With enableShading it adds ambient, diffuse
// and Blinn-Phong specular light from lightPosition, attenuated by a 3×3 PCF lookup
// into the body's own depth map. cloud adds an animated Perlin layer.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;

uniform mat4 distort;
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;
uniform mat4 lightMVP;

out vec2 fragTexCoord;
out vec3 fragPosition;
out vec3 fragNormal;
out vec4 fragPosLightSpace;
out vec3 cloudPosition;

void main() {
  gl_Position = distort * proj * view * model * vec4(vertexPosition, 1.0);
  fragPosition = vec3(model * vec4(vertexPosition, 1.0));
  fragNormal = transpose(inverse(mat3(model))) * vertexNormal;
  fragTexCoord = vertexTexCoord;
  fragPosLightSpace = lightMVP * vec4(vertexPosition, 1.0);
  cloudPosition = vertexPosition;
}
`
	litFS = `#version 330
in vec2 fragTexCoord;
in vec3 fragPosition;
in vec3 fragNormal;
in vec4 fragPosLightSpace;
in vec3 cloudPosition;

uniform mat4 model;
uniform mat4 view;
uniform mat4 cloudModel;
uniform sampler2D tex;
uniform sampler2D shadowMap;
uniform vec3 lightPosition;
uniform vec3 cameraPosition;
uniform float enableShading;
uniform float cloud;

out vec4 finalColor;

vec3 hash(vec3 p) {
  p = vec3(dot(p, vec3(127.1, 311.7, 74.7)),
           dot(p, vec3(269.5, 183.3, 246.1)),
           dot(p, vec3(113.5, 271.9, 124.6)));
  return -1.0 + 2.0 * fract(sin(p) * 43758.5453123);
}

float perlin(vec3 p) {
  vec3 i = floor(p);
  vec3 f = fract(p);
  vec3 u = smoothstep(0.0, 1.0, f);

  float s000 = dot(hash(i + vec3(0, 0, 0)), f - vec3(0, 0, 0));
  float s100 = dot(hash(i + vec3(1, 0, 0)), f - vec3(1, 0, 0));
  float s110 = dot(hash(i + vec3(1, 1, 0)), f - vec3(1, 1, 0));
  float s010 = dot(hash(i + vec3(0, 1, 0)), f - vec3(0, 1, 0));
  float a = mix(mix(s000, s100, u.x), mix(s010, s110, u.x), u.y);

  float s001 = dot(hash(i + vec3(0, 0, 1)), f - vec3(0, 0, 1));
  float s101 = dot(hash(i + vec3(1, 0, 1)), f - vec3(1, 0, 1));
  float s111 = dot(hash(i + vec3(1, 1, 1)), f - vec3(1, 1, 1));
  float s011 = dot(hash(i + vec3(0, 1, 1)), f - vec3(0, 1, 1));
  float b = mix(mix(s001, s101, u.x), mix(s011, s111, u.x), u.y);

  return mix(a, b, u.z);
}

vec3 noise(vec3 position) {
  vec3 p = position * 8.0;
  float f = perlin(p);
  f += 0.5000 * perlin(2.0 * p);
  f += 0.2500 * perlin(4.0 * p);
  f += 0.1250 * perlin(8.0 * p);
  return vec3(0.5 * f + 0.5);
}

float shadowFactor(vec3 normal, vec3 lightDir) {
  vec3 projCoords = fragPosLightSpace.xyz / fragPosLightSpace.w;
  projCoords = projCoords * 0.5 + 0.5;
  float currentDepth = projCoords.z;
  float bias = max(0.05 * (1.0 - dot(normal, lightDir)), 0.005);
  vec2 texelSize = 1.0 / vec2(textureSize(shadowMap, 0));
  float shadow = 0.0;
  for (int x = -1; x <= 1; ++x) {
    for (int y = -1; y <= 1; ++y) {
      float pcfDepth = texture(shadowMap, projCoords.xy + vec2(x, y) * texelSize).r;
      shadow += currentDepth - bias > pcfDepth ? 1.0 : 0.0;
    }
  }
  return shadow / 9.0;
}

void main() {
  vec3 color = texture(tex, fragTexCoord).rgb;
  if (cloud > 0.5) {
    color += noise(vec3(view * cloudModel * model * vec4(cloudPosition, 1.0)));
  }
  if (enableShading < 0.5) {
    finalColor = vec4(color, 1.0);
    return;
  }

  vec3 normal = normalize(fragNormal);
  vec3 lightColor = vec3(1.0);
  vec3 ambient = 0.15 * color;

  vec3 lightDir = normalize(lightPosition - fragPosition);
  vec3 diffuse = max(dot(lightDir, normal), 0.0) * lightColor;

  vec3 viewDir = normalize(cameraPosition - fragPosition);
  vec3 halfwayDir = normalize(lightDir + viewDir);
  vec3 specular = pow(max(dot(normal, halfwayDir), 0.0), 64.0) * lightColor;

  float shadow = shadowFactor(normal, lightDir);
  finalColor = vec4((ambient + (1.0 - shadow) * (diffuse + specular)) * color, 1.0);
}
`
)

// depthVS and depthFS write light-space depth only.
const (
	depthVS = `#version 330
in vec3 vertexPosition;
uniform mat4 depthMVP;
void main() {
  gl_Position = depthMVP * vec4(vertexPosition, 1.0);
}
`
	depthFS = `#version 330
out vec4 finalColor;
void main() {
  finalColor = vec4(0.0, 0.0, 0.0, 1.0);
}
`
)
