package platform

import "testing"

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.appName() != DefaultAppName {
		t.Fatalf("appName = %q, want %q", o.appName(), DefaultAppName)
	}
	if o.timeout() != 5000 {
		t.Fatalf("timeout = %d, want 5000", o.timeout())
	}
	o = Options{AppName: "custom", TimeoutMillis: 1200}
	if o.appName() != "custom" || o.timeout() != 1200 {
		t.Fatalf("overrides ignored: %q %d", o.appName(), o.timeout())
	}
}
