package view

import (
	"testing"
	"time"

	"github.com/twdsco/hackertracker/internal/event"
)

var taipei = time.FixedZone("UTC+08:00", 8*3600)

func collection(t *testing.T, data string) *event.Collection {
	t.Helper()
	c, err := event.Parse([]byte(data), event.DefaultVocabulary(), taipei)
	if err != nil {
		t.Fatalf("event.Parse: %v", err)
	}
	return c
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
