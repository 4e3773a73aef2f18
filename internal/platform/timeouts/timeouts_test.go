package timeouts

import "testing"

func TestHelperStartCoversSingleCall(t *testing.T) {
	if HelperStart <= 0 || ScriptCall <= 0 {
		t.Fatal("expected positive durations")
	}
	if HelperStop >= HelperStart {
		t.Fatalf("expected stop %v below start %v", HelperStop, HelperStart)
	}
}
