package ptime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEventTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"reunião com João amanhã às 15h", "reunião com João"},
		{"consulta médica próxima sexta", "consulta médica"},
		{"Dentista amanhã às 10:00", "Dentista"},
		{"jantar com a família sábado às 8 da noite", "jantar com a família"},
		{"almoço hoje", "almoço"},
		{"amanhã às 9h academia", "academia"},
		{"prova de cálculo dia 25/12", "prova de cálculo"},
		{"ligar para o banco amanhã de manhã", "ligar para o banco"},
		{"  reunião   de   equipe   amanhã  ", "reunião de equipe"},
		{"comprar pão", "comprar pão"},
		{"dentista depois de amanhã às 14h", "dentista"},
		{"reunião sexta sobre o próximo trimestre", "reunião sobre o próximo trimestre"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEventTitle(tt.input))
		})
	}
}

func TestExtractEventTitle_OnlyTemporalKeepsUtterance(t *testing.T) {
	for _, input := range []string{"amanhã às 15h", "às 7 da noite", "hoje", ""} {
		assert.Equal(t, input, ExtractEventTitle(input))
	}
}

func TestExtractEventTitle_Idempotent(t *testing.T) {
	inputs := []string{
		"reunião com João amanhã às 15h",
		"consulta médica próxima sexta",
		"jantar com a família sábado às 8 da noite",
		"aula de inglês terça às 19h30",
		"café às onze e meia na padaria",
		"comprar pão",
		"amanhã às 15h",
	}
	for _, input := range inputs {
		once := ExtractEventTitle(input)
		assert.Equal(t, once, ExtractEventTitle(once), input)
	}
}
