package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saranzafar/hotel-book/internal/lib/validate"
	"github.com/saranzafar/hotel-book/internal/models"
)

func TestStatusOKWithData(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := StatusOKWithData(data)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, data, resp.Data)
}

func TestError(t *testing.T) {
	msg := "something went wrong"
	resp := Error(msg)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, msg, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestValidationError(t *testing.T) {
	v := validate.New()

	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{
			name:  "client",
			input: models.DummyClient{Phone: "123", Email: "nope"},
			want: []string{
				"field Name is a required field",
				"field Phone must contain at least 10 digits",
				"field Email must be a valid email",
			},
		},
		{
			name:  "subscription",
			input: models.DummySubscription{ClientID: 1, StartDate: "01-01-2024", EndDate: "2024-01-10", TotalAmount: 5, AmountPaid: -1},
			want: []string{
				"field StartDate can contain only date in format YYYY-MM-DD",
				"field AmountPaid must not be less than 0",
			},
		},
		{
			name:  "payment",
			input: models.DummyPayment{SubscriptionID: 1, Amount: -5},
			want:  []string{"field Amount must be greater than 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			require.Error(t, err)

			var validationErrors validator.ValidationErrors
			require.True(t, errors.As(err, &validationErrors))
			resp := ValidationError(validationErrors)

			assert.Equal(t, StatusError, resp.Status)
			for _, msg := range tt.want {
				assert.Contains(t, resp.Error, msg)
			}
		})
	}
}
