package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
    cases := []struct {
        raw  string
        want Role
        ok   bool
    }{
        {"ADMIN", RoleAdmin, true},
        {"admin", RoleAdmin, true},
        {" sub_admin ", RoleSubAdmin, true},
        {"USER", RoleUser, true},
        {"OWNER", "", false},
        {"", "", false},
    }
    for _, tc := range cases {
        got, ok := ParseRole(tc.raw)
        assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
        assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
    }
}

func TestCapabilities(t *testing.T) {
    // every authenticated role can reserve
    for _, r := range []Role{RoleAdmin, RoleSubAdmin, RoleUser} {
        assert.True(t, r.CanReserve(), "role=%s", r)
    }
    // only admin roles can manage
    assert.True(t, RoleAdmin.CanManage())
    assert.True(t, RoleSubAdmin.CanManage())
    assert.False(t, RoleUser.CanManage())
    // an unknown role has no capabilities at all
    assert.False(t, Role("GUEST").CanReserve())
    assert.False(t, Role("GUEST").CanManage())
}
