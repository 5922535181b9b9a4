package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want SkillList
	}{
		{name: "comma separated", body: `{"skills":"go, mongo ,  docker"}`, want: SkillList{"go", "mongo", "docker"}},
		{name: "array", body: `{"skills":[" go ","mongo"]}`, want: SkillList{"go", "mongo"}},
		{name: "empty entries dropped", body: `{"skills":"go,, ,mongo,"}`, want: SkillList{"go", "mongo"}},
		{name: "blank string", body: `{"skills":"  "}`, want: nil},
		{name: "missing", body: `{}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpsertProfileRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Skills)
		})
	}
}

func TestSkillList_RejectsOtherTypes(t *testing.T) {
	var req UpsertProfileRequest
	assert.Error(t, json.Unmarshal([]byte(`{"skills":42}`), &req))
}
