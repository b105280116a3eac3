package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersReqValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := ListUsersReq{}
		require.NoError(t, req.Validate())
		assert.Equal(t, 1, req.Page)
		assert.Equal(t, DefaultPageSize, req.Size)
	})

	t.Run("size is clamped", func(t *testing.T) {
		req := ListUsersReq{Page: 3, Size: 5000}
		require.NoError(t, req.Validate())
		assert.Equal(t, 3, req.Page)
		assert.Equal(t, MaxPageSize, req.Size)
	})
}

func TestLoadUsersReqValidate(t *testing.T) {
	n := func(v int) *int { return &v }

	assert.NoError(t, (&LoadUsersReq{Number: n(0)}).Validate())
	assert.NoError(t, (&LoadUsersReq{Number: n(1000)}).Validate())

	err := (&LoadUsersReq{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number")

	assert.Error(t, (&LoadUsersReq{Number: n(-1)}).Validate())
	assert.Error(t, (&LoadUsersReq{Number: n(1001)}).Validate())
}

func TestParseLoadForm(t *testing.T) {
	req, err := ParseLoadForm(" 5 ")
	require.NoError(t, err)
	assert.Equal(t, 5, *req.Number)

	tests := []struct {
		value string
		msg   string
	}{
		{"", "This field is required."},
		{"abc", "Enter a whole number."},
		{"-3", "greater than or equal to 0"},
		{"1001", "less than or equal to 1000"},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			_, err := ParseLoadForm(tc.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestUserPage(t *testing.T) {
	p := &UserPage{Page: 1, Size: 10, TotalCount: 25}
	assert.Equal(t, 3, p.TotalPages())
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p.Page = 3
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())

	empty := &UserPage{Page: 1, Size: 10}
	assert.Equal(t, 1, empty.TotalPages())
	assert.False(t, empty.HasNext())
}
