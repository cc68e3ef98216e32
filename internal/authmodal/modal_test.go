package authmodal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_OpenClose(t *testing.T) {
	t.Parallel()

	c := NewController()
	assert.False(t, c.Visible())
	_, ok := c.Mode()
	assert.False(t, ok, "mode is meaningless while closed")

	c.Open(ModeLogin)
	assert.True(t, c.Visible())
	mode, ok := c.Mode()
	require.True(t, ok)
	assert.Equal(t, ModeLogin, mode)

	c.Close()
	assert.False(t, c.Visible())
	_, ok = c.Mode()
	assert.False(t, ok)
}

func TestController_SwitchMode(t *testing.T) {
	t.Parallel()

	c := NewController()
	c.Open(ModeLogin)

	c.SwitchMode()
	mode, ok := c.Mode()
	require.True(t, ok)
	assert.Equal(t, ModeRegister, mode)
	assert.True(t, c.Visible(), "switching must end with the modal open")

	c.SwitchMode()
	mode, _ = c.Mode()
	assert.Equal(t, ModeLogin, mode)
}

func TestController_SwitchModeWhileClosedIsNoOp(t *testing.T) {
	t.Parallel()

	c := NewController()
	c.SwitchMode()
	assert.False(t, c.Visible())
}

func TestLoginForm_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		form      LoginForm
		wantField string
	}{
		{"Valid", LoginForm{Email: "a@example.com", Password: "abc123"}, ""},
		{"Missing Email", LoginForm{Password: "abc123"}, "email"},
		{"Missing Password", LoginForm{Email: "a@example.com"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestRegisterForm_Validate(t *testing.T) {
	t.Parallel()

	valid := RegisterForm{
		Username:        "alice",
		Email:           "a@example.com",
		Password:        "abc123",
		ConfirmPassword: "abc123",
		FullName:        "Alice A",
	}

	t.Run("valid form passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("password mismatch is a field error", func(t *testing.T) {
		t.Parallel()
		form := valid
		form.Password = "abc123"
		form.ConfirmPassword = "abc124"

		err := form.Validate()
		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "confirmPassword", fieldErr.Field)
		assert.Equal(t, "Passwords do not match", fieldErr.Message)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		t.Parallel()
		form := valid
		form.Password = "abc"
		form.ConfirmPassword = "abc"

		err := form.Validate()
		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "password", fieldErr.Field)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		t.Parallel()
		form := valid
		form.Email = "not-an-email"

		err := form.Validate()
		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "email", fieldErr.Field)
	})
}

func TestRegisterForm_InputDropsConfirmation(t *testing.T) {
	t.Parallel()

	form := RegisterForm{
		Username:        "alice",
		Email:           "a@example.com",
		Password:        "abc123",
		ConfirmPassword: "abc123",
		FullName:        "Alice A",
	}
	in := form.Input()
	assert.Equal(t, "alice", in.Username)
	assert.Equal(t, "abc123", in.Password)
}
