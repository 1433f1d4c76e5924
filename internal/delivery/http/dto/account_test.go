package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRequest_PatchMergesFormNames(t *testing.T) {
	cases := []struct {
		name string
		body string
		want [4]bool // new_message, new_event, new_skill, is_mentor
	}{
		{"api names", `{"new_message":true,"new_event":"on","is_mentor":1}`, [4]bool{true, true, false, true}},
		{"form names", `{"notify_messages":"on","notify_skills":"on","mentor_status":"on"}`, [4]bool{true, false, true, true}},
		{"mixed", `{"new_event":true,"notify_events":false,"notify_messages":"yes"}`, [4]bool{true, true, false, false}},
		{"none", `{}`, [4]bool{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req SettingsRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			p := req.Patch()
			assert.Equal(t, tc.want, [4]bool{p.NewMessage, p.NewEvent, p.NewSkill, p.IsMentor})
		})
	}
}
