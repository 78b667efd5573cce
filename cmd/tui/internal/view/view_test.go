package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

func TestSettingsDraft_RoundTrip(t *testing.T) {
	cfg := settings.Defaults()
	assert.Equal(t, cfg, newSettingsDraft(cfg).configuration())
}

func TestSettingsDraft_Edits(t *testing.T) {
	d := newSettingsDraft(settings.Defaults())
	d.companyName = "  Lanka Wheels "
	d.currency = "usd"
	d.validityDays = "30"
	d.zebraRows = false

	got := d.configuration()
	assert.Equal(t, "Lanka Wheels", got.General.CompanyName)
	assert.Equal(t, "USD", got.General.Currency)
	assert.Equal(t, 30, got.DocumentDefaults.QuoteValidityDays)
	assert.False(t, got.DocumentDefaults.ShowZebraRows)
	assert.Equal(t, settings.Defaults().Notifications, got.Notifications)

	for _, raw := range []string{"soon", "-1", "99999", "4000"} {
		d.validityDays = raw
		assert.Equal(t, settings.DefaultQuoteValidityDays, d.configuration().DocumentDefaults.QuoteValidityDays, raw)
	}

	d.validityDays = " 0 "
	assert.Equal(t, 0, d.configuration().DocumentDefaults.QuoteValidityDays)
}

func TestSettingsDraft_DaysMatchResolve(t *testing.T) {
	for _, raw := range []string{"30", "0", "3650", "3651", "soon", "", "1e3", "+5"} {
		d := newSettingsDraft(settings.Defaults())
		d.validityDays = raw

		resolved := settings.Resolve([]byte(`{"documentDefaults":{"quoteValidityDays":"` + raw + `"}}`))
		assert.Equal(t, resolved.DocumentDefaults.QuoteValidityDays, d.configuration().DocumentDefaults.QuoteValidityDays, raw)
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateItems("2; Car hire; 3000"))
	assert.Error(t, validateItems(""))
	assert.Error(t, validateItems("1; a; 2; 3; 4"))

	assert.NoError(t, validateDate(""))
	assert.NoError(t, validateDate("2024-05-10"))
	assert.Error(t, validateDate("10/05/2024"))

	assert.NoError(t, validatePositiveInt("7"))
	assert.Error(t, validatePositiveInt("0"))
	assert.Error(t, validatePositiveInt("x"))

	assert.NoError(t, validateValidityDays("0"))
	assert.NoError(t, validateValidityDays("3650"))
	assert.Error(t, validateValidityDays("-1"))
	assert.Error(t, validateValidityDays("3651"))
}
