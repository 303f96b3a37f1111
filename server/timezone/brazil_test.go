package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneForPhone(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		want   string
		wantOK bool
	}{
		{"whatsapp manaus", "5592991234567@s.whatsapp.net", "America/Manaus", true},
		{"whatsapp acre", "556899123456@s.whatsapp.net", "America/Rio_Branco", true},
		{"whatsapp cuiaba", "5565991234567@c.us", "America/Cuiaba", true},
		{"whatsapp recife", "5581991234567@s.whatsapp.net", "America/Recife", true},
		{"sao paulo", "5511991234567", TimezoneSaoPaulo, true},
		{"formatted", "+55 (92) 99123-4567", "America/Manaus", true},
		{"unlisted ddd", "5541991234567", TimezoneSaoPaulo, true},
		{"telegram id", "123456789", "", false},
		{"foreign number", "351912345678", "", false},
		{"invalid ddd", "5509991234567", "", false},
		{"letters", "55abc1234567", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ZoneForPhone(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZoneForPhone_AllZonesLoad(t *testing.T) {
	for ddd, zone := range dddZones {
		assert.True(t, IsValidTimezone(zone), "ddd %s -> %s", ddd, zone)
	}
	for region, zone := range regionZones {
		assert.True(t, IsValidTimezone(zone), "region %s -> %s", region, zone)
	}
}

func TestZoneForLocale(t *testing.T) {
	tests := []struct {
		hint   string
		want   string
		wantOK bool
	}{
		{"pt-BR", TimezoneSaoPaulo, true},
		{"pt_BR", TimezoneSaoPaulo, true},
		{"pt-PT", TimezoneLisbon, true},
		{"pt_AO", "Africa/Luanda", true},
		{"pt", TimezoneSaoPaulo, true},
		{"fr-FR", "", false},
		{"", "", false},
		{"not a locale!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			got, ok := ZoneForLocale(tt.hint)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
