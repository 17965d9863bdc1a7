package renderer

const terrainVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec3 aNormal;

uniform mat4 uView;
uniform mat4 uProjection;

out vec2 vTexCoord;
out vec3 vNormal;

void main() {
    vTexCoord = aTexCoord;
    vNormal = aNormal;
    gl_Position = uProjection * uView * vec4(aPosition, 1.0);
}
`

const terrainFragmentShader = `
#version 410 core

in vec2 vTexCoord;
in vec3 vNormal;

uniform sampler2D uTexture;
uniform vec3 uLightDir;
uniform float uAmbient;

out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), normalize(uLightDir)), 0.0);
    vec4 texel = texture(uTexture, vTexCoord);
    FragColor = vec4(texel.rgb * min(uAmbient + diffuse, 1.0), 1.0);
}
`

const flatVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uMVP;

void main() {
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const flatFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
    FragColor = uColor;
}
`

const panelVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPosition;
layout (location = 1) in vec2 aTexCoord;

uniform mat4 uProjection;

out vec2 vTexCoord;

void main() {
    vTexCoord = aTexCoord;
    gl_Position = uProjection * vec4(aPosition, 0.0, 1.0);
}
`

const panelFragmentShader = `
#version 410 core

in vec2 vTexCoord;

uniform sampler2D uTexture;

out vec4 FragColor;

void main() {
    FragColor = texture(uTexture, vTexCoord);
}
`
