package controller

import "testing"

func TestDecodeSnapshotValid(t *testing.T) {
	body := []byte(`{
		"users": [{"name":"Alice","active":true,"cards":["30 33993"],"doors":[1]}],
		"door_schedules": {"2": [{"day":0,"start":"09:00","end":"17:00","type":"unlock"}]},
		"temp_codes": [{"code":"9988","name":"Guest","active":true,"usage_type":"one_time","doors":[1,2]}]
	}`)
	snap, err := DecodeSnapshot(body)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	principals := snap.ToPrincipals()
	if len(principals) != 1 || principals[0].Name != "Alice" {
		t.Fatalf("got %+v", principals)
	}
	tempCodes := snap.ToTempCodes()
	if len(tempCodes) != 1 || tempCodes[0].Policy.Kind != "one_time" {
		t.Fatalf("got %+v", tempCodes)
	}
	intervals := snap.DoorSchedule(2)
	if len(intervals) != 1 || intervals[0].Start != 9*60 || intervals[0].End != 17*60 {
		t.Fatalf("got %+v", intervals)
	}
}

func TestDecodeSnapshotInvalidJSON(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{not valid json`))
	if err == nil {
		t.Fatal("expected parse error on invalid JSON")
	}
}
