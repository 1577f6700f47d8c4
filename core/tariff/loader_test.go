package tariff

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-portal/core/types"
	"cloud-portal/internal/errors"
)

const sampleHCL = `
currency = "EUR"

computation {
  max_instances = 6

  tier {
    ram_gb         = 16
    monthly_price  = 10
    min_storage_tb = 1
  }

  tier {
    ram_gb         = 32
    monthly_price  = 20
    min_storage_tb = 2
  }

  tier {
    ram_gb         = 64
    monthly_price  = 40
    min_storage_tb = 4
  }
}

storage {
  price_per_tb_month = 2
  min_tb_per_order   = 1
  max_global_tb      = 100
}

data_transfer {
  base_price       = 1
  base_tier_gb     = 10
  tier1_gb         = 20
  tier1_multiplier = 0.8
  tier2_multiplier = 0.5
}
`

func TestParseSample(t *testing.T) {
	tariffs, err := Parse("tariffs.hcl", []byte(sampleHCL))
	require.NoError(t, err)

	assert.Equal(t, types.CurrencyEUR, tariffs.Currency)
	assert.Equal(t, 6, tariffs.Computation.MaxInstances)
	require.Len(t, tariffs.Computation.Tiers, 3)
	assert.Equal(t, float64(32), tariffs.Computation.Tiers[1].SizeGb)
	assert.True(t, tariffs.Computation.Tiers[1].MonthlyPrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, float64(100), tariffs.Storage.MaxGlobalTb)

	// max_gb omitted: the default ceiling applies.
	assert.Equal(t, float64(DefaultMaxDataGb), tariffs.DataTransfer.MaxGb)
}

func TestParseRejectsBadHCL(t *testing.T) {
	_, err := Parse("tariffs.hcl", []byte("computation {"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestParseRejectsUnorderedTiers(t *testing.T) {
	const unordered = `
computation {
  max_instances = 2
  tier {
    ram_gb        = 32
    monthly_price = 20
  }
  tier {
    ram_gb        = 16
    monthly_price = 10
  }
}
storage {
  price_per_tb_month = 2
  max_global_tb      = 100
}
data_transfer {
  base_price       = 1
  base_tier_gb     = 10
  tier1_gb         = 20
  tier1_multiplier = 0.8
  tier2_multiplier = 0.5
}
`
	_, err := Parse("tariffs.hcl", []byte(unordered))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.hcl")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
