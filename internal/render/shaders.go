package render

// O mesher empacota a luz no atributo de cor do vértice:
// RGB = luz colorida de blocos, A = skylight. O shader combina os dois
// por máximo componente a componente, modulando o skylight pela cor do céu.

const chunkVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;

out vec2 fragTexCoord;
out vec4 fragColor;
out vec3 fragNormal;

void main()
{
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    fragNormal = vertexNormal;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const chunkFragmentShader = `
#version 330

in vec2 fragTexCoord;
in vec4 fragColor;
in vec3 fragNormal;

uniform sampler2D texture0;
uniform vec4 colDiffuse;

out vec4 finalColor;

void main()
{
    vec4 texel = texture(texture0, fragTexCoord);

    // Sombreamento direcional sutil por face, para leitura de volume
    float faceShade = 1.0;
    if (abs(fragNormal.y) < 0.01) {
        faceShade = abs(fragNormal.x) > 0.5 ? 0.8 : 0.9;
    } else if (fragNormal.y < -0.5) {
        faceShade = 0.7;
    }

    vec3 skyColor = vec3(1.0, 1.0, 1.0);
    vec3 blockLight = fragColor.rgb;
    vec3 skyLight = skyColor * fragColor.a;
    vec3 light = max(blockLight, skyLight);

    // Piso de luz para nunca renderizar preto absoluto
    light = max(light, vec3(0.03));

    finalColor = vec4(texel.rgb * colDiffuse.rgb * light * faceShade, texel.a * colDiffuse.a);
}
`
