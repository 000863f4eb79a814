package notifications_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/notifications"
)

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	valid := notifications.Input{
		SubjectID: "u1",
		Type:      notifications.TypeBookingApproved,
		Title:     "Approved",
		Message:   "ok",
	}

	tests := []struct {
		name    string
		mutate  func(in *notifications.Input)
		wantErr []string
	}{
		{name: "valid", mutate: func(*notifications.Input) {}},
		{name: "broadcast without recipients", mutate: func(in *notifications.Input) { in.SubjectID = "" }},
		{name: "relative action url", mutate: func(in *notifications.Input) { in.ActionURL = "/bookings/1" }},
		{name: "absolute action url", mutate: func(in *notifications.Input) { in.ActionURL = "https://admin.example.com/b/1" }},
		{name: "missing title", mutate: func(in *notifications.Input) { in.Title = "" }, wantErr: []string{"title"}},
		{name: "blank message", mutate: func(in *notifications.Input) { in.Message = " \t" }, wantErr: []string{"message"}},
		{name: "missing type", mutate: func(in *notifications.Input) { in.Type = "" }, wantErr: []string{"type"}},
		{name: "bad action url", mutate: func(in *notifications.Input) { in.ActionURL = "not a url" }, wantErr: []string{"action_url"}},
		{
			name:    "several fields",
			mutate:  func(in *notifications.Input) { in.Title, in.Message = "", "" },
			wantErr: []string{"title", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tt.mutate(&in)
			err := in.Validate()

			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, notifications.ErrValidation)
			var verr *notifications.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, field := range tt.wantErr {
				assert.Contains(t, verr.Fields, field)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	t.Parallel()

	inputs := []notifications.Input{
		notifications.BookingCreated("manager", "b1", "Jane"),
		notifications.BookingApproved("u1", "b1"),
		notifications.BookingRejected("u1", "b1", "no vehicles"),
		notifications.BookingRejected("u1", "b1", ""),
		notifications.BookingCancelled("u1", "b1"),
		notifications.PaymentReceived("u1", "b1", "$120"),
		notifications.PaymentFailed("u1", "b1"),
		notifications.VehicleChanged("u1", "b1", "Tesla Model 3"),
		notifications.AdminMessage("", "", "Maintenance", "Back at 10pm"),
	}
	for _, in := range inputs {
		assert.NoError(t, in.Validate(), in.Type)
	}

	assert.Equal(t, "manager", inputs[0].Role)
	assert.Equal(t, "/bookings/b1", inputs[1].ActionURL)
	assert.Contains(t, inputs[2].Message, "no vehicles")
}
