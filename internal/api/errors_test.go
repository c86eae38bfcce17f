package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *APIError
		wantStr string
	}{
		{
			name: "with message",
			err: &APIError{
				StatusCode: 404,
				Endpoint:   "/stations/1130224/train-types",
				Message:    "station not found",
			},
			wantStr: "station-data API /stations/1130224/train-types returned 404: station not found",
		},
		{
			name: "status text",
			err: &APIError{
				StatusCode: 500,
				Endpoint:   "/lines/11302/stations",
			},
			wantStr: "station-data API /lines/11302/stations returned 500: Internal Server Error",
		},
		{
			name: "with request id",
			err: &APIError{
				StatusCode: 429,
				Endpoint:   "/train-types/501/stations",
				RequestID:  "0b6f5cf4-7d1e-4a55-9a43-5e0c8a3b2f10",
			},
			wantStr: "station-data API /train-types/501/stations returned 429: Too Many Requests (request 0b6f5cf4-7d1e-4a55-9a43-5e0c8a3b2f10)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidRequest, ErrServerError, ErrTimeout}

	tests := []struct {
		status int
		want   error
	}{
		{404, ErrNotFound},
		{400, ErrInvalidRequest},
		{422, ErrInvalidRequest},
		{408, ErrTimeout},
		{504, ErrTimeout},
		{429, ErrServerError},
		{500, ErrServerError},
		{503, ErrServerError},
		{302, nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := fmt.Errorf("fetching line: %w", &APIError{StatusCode: tt.status, Endpoint: "/lines/11302"})
			for _, target := range sentinels {
				if got := errors.Is(err, target); got != (target == tt.want) {
					t.Errorf("errors.Is(%d, %v) = %v, want %v", tt.status, target, got, !got)
				}
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("direction", "want inbound or outbound")

	if err.Field != "direction" {
		t.Errorf("Field = %q, want %q", err.Field, "direction")
	}
	expectedStr := "direction: want inbound or outbound"
	if err.Error() != expectedStr {
		t.Errorf("Error() = %q, want %q", err.Error(), expectedStr)
	}
}

func TestInvalidID(t *testing.T) {
	err := invalidID("trainTypeId", -501)

	ve := &ValidationError{}
	if !errors.As(err, &ve) {
		t.Fatal("Expected *ValidationError")
	}
	if ve.Field != "trainTypeId" || ve.Value != "-501" {
		t.Errorf("ValidationError = %+v, want trainTypeId -501", ve)
	}
	expectedStr := `trainTypeId "-501": must be a positive id`
	if err.Error() != expectedStr {
		t.Errorf("Error() = %q, want %q", err.Error(), expectedStr)
	}
}

func TestNotAnID(t *testing.T) {
	err := notAnID("line", "yamanote")

	ve := &ValidationError{}
	if !errors.As(err, &ve) {
		t.Fatal("Expected *ValidationError")
	}
	if ve.Value != "yamanote" {
		t.Errorf("Value = %q, want %q", ve.Value, "yamanote")
	}
}

func TestMissingField(t *testing.T) {
	err := missingField("datasets[0].stations[3].id")

	expectedStr := "datasets[0].stations[3].id: missing"
	if err.Error() != expectedStr {
		t.Errorf("Error() = %q, want %q", err.Error(), expectedStr)
	}
}
