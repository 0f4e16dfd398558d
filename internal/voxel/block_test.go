package voxel

import "testing"

func TestPackLight(t *testing.T) {
	tests := []struct {
		r, g, b, sky uint8
	}{
		{0, 0, 0, 0},
		{15, 15, 15, 15},
		{15, 13, 10, 0},
		{1, 2, 3, 4},
		{0, 0, 0, 15},
	}

	for _, tt := range tests {
		l := PackLight(tt.r, tt.g, tt.b, tt.sky)
		if l.R() != tt.r || l.G() != tt.g || l.B() != tt.b || l.Sky() != tt.sky {
			t.Errorf("PackLight(%d,%d,%d,%d) = R%d G%d B%d S%d",
				tt.r, tt.g, tt.b, tt.sky, l.R(), l.G(), l.B(), l.Sky())
		}
	}
}

func TestLightWithChannel(t *testing.T) {
	l := PackLight(3, 7, 11, 15)

	l = l.WithChannel(ChannelG, 0)
	if l.G() != 0 {
		t.Errorf("WithChannel(G, 0): G = %d", l.G())
	}
	// Os outros canais não podem ser afetados
	if l.R() != 3 || l.B() != 11 || l.Sky() != 15 {
		t.Errorf("WithChannel vazou para outros canais: R%d B%d S%d", l.R(), l.B(), l.Sky())
	}

	l = l.WithChannel(ChannelSky, 9)
	if l.Sky() != 9 {
		t.Errorf("WithChannel(Sky, 9): Sky = %d", l.Sky())
	}

	// Valores acima de 15 são truncados para o nibble
	l = l.WithChannel(ChannelR, 0xFF)
	if l.R() != 15 {
		t.Errorf("WithChannel(R, 0xFF): R = %d", l.R())
	}
}

func TestBlockIsAir(t *testing.T) {
	if !(Block{}).IsAir() {
		t.Error("Block{} deveria ser ar")
	}
	if (Block{ID: 1}).IsAir() {
		t.Error("Block{ID:1} não deveria ser ar")
	}
	// Data não muda a classificação
	if !(Block{Data: 3}).IsAir() {
		t.Error("Block{Data:3} deveria ser ar")
	}
}
