package api

import "testing"

func TestChatLimiterBurstPerUser(t *testing.T) {
	t.Parallel()

	limiter := newChatLimiter(chatRequestsPerMinute, chatBurst)
	for attempt := 0; attempt < chatBurst; attempt++ {
		if !limiter.allow(1) {
			t.Fatalf("expected request %d within burst to pass", attempt+1)
		}
	}
	if limiter.allow(1) {
		t.Fatal("expected request beyond burst to be limited")
	}
	if !limiter.allow(2) {
		t.Fatal("expected other user to have an independent bucket")
	}

	limiter.forget(1)
	if !limiter.allow(1) {
		t.Fatal("expected forgotten user to start with a fresh bucket")
	}
}
