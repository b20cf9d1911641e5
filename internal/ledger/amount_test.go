package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "DecimalComma", input: "12,34", want: 1234},
		{name: "DecimalDot", input: "12.34", want: 1234},
		{name: "Integer", input: "45", want: 4500},
		{name: "Whitespace", input: "  7,50  ", want: 750},
		{name: "SubCentRounds", input: "0,015", want: 2},
		{name: "Zero", input: "0", wantErr: true},
		{name: "Negative", input: "-5,00", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
		{name: "NotANumber", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ParseAmount(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
