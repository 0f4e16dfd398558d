package voxel

// Block é um voxel: id do tipo + data auxiliar (índice de rotação).
// Solidez e opacidade não são armazenadas; derivam do registro pelo id.
type Block struct {
	ID   uint8
	Data uint8
}

// IsAir informa se o bloco é ar (id 0).
func (b Block) IsAir() bool {
	return b.ID == 0
}

// Canais de luz dentro do u16 empacotado.
const (
	ChannelR = iota
	ChannelG
	ChannelB
	ChannelSky
	ChannelCount
)

// MaxLight é o valor máximo de um canal (4 bits).
const MaxLight = 15

// Light empacota quatro canais de 4 bits em um u16:
// bits 0-3 R, 4-7 G, 8-11 B, 12-15 skylight.
type Light uint16

// PackLight monta um Light a partir dos quatro canais.
func PackLight(r, g, b, sky uint8) Light {
	return Light(uint16(r&0xF) | uint16(g&0xF)<<4 | uint16(b&0xF)<<8 | uint16(sky&0xF)<<12)
}

// Channel extrai um canal (0..15).
func (l Light) Channel(ch int) uint8 {
	return uint8(l>>(uint(ch)*4)) & 0xF
}

// WithChannel retorna uma cópia com o canal substituído.
func (l Light) WithChannel(ch int, v uint8) Light {
	shift := uint(ch) * 4
	return (l &^ (0xF << shift)) | Light(uint16(v&0xF)<<shift)
}

// R retorna o canal vermelho de luz de bloco.
func (l Light) R() uint8 { return l.Channel(ChannelR) }

// G retorna o canal verde de luz de bloco.
func (l Light) G() uint8 { return l.Channel(ChannelG) }

// B retorna o canal azul de luz de bloco.
func (l Light) B() uint8 { return l.Channel(ChannelB) }

// Sky retorna o canal de luz do céu.
func (l Light) Sky() uint8 { return l.Channel(ChannelSky) }
