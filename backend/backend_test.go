package backend_test

import (
	"testing"

	"github.com/gridpen/enclose/backend"
)

func TestStatusString(t *testing.T) {
	cases := []struct {
		st   backend.Status
		want string
	}{
		{backend.Unknown, "Unknown"},
		{backend.Optimal, "Optimal"},
		{backend.Feasible, "Feasible"},
		{backend.Infeasible, "Infeasible"},
		{backend.ModelInvalid, "ModelInvalid"},
		{backend.Status(99), "Unknown"},
	}
	for _, tc := range cases {
		if got := tc.st.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q; want %q", tc.st, got, tc.want)
		}
	}
}
