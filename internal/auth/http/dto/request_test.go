package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request AuthRequest
		wantErr bool
	}{
		{"Valid", AuthRequest{ServiceID: "service1", Secret: "s3cret"}, false},
		{"MissingServiceID", AuthRequest{Secret: "s3cret"}, true},
		{"BlankServiceID", AuthRequest{ServiceID: "   ", Secret: "s3cret"}, true},
		{"MissingSecret", AuthRequest{ServiceID: "service1"}, true},
		{"Empty", AuthRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
