package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"dbName":  "yatra",
		},
		"amadeus": map[string]any{
			"clientId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"chatGateway": map[string]any{
			"baseUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_DBNAME", want: "postgres.dbName"},
		{envKey: "AMADEUS_CLIENTID", want: "amadeus.clientId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "CHATGATEWAY_BASEURL", want: "chatGateway.baseUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyProximityDefaults(t *testing.T) {
	p := &ProximityConfig{}
	applyProximityDefaults(p)

	if p.DefaultRadiusKm != 10 || p.MinRadiusKm != 1 || p.MaxRadiusKm != 50 {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	p = &ProximityConfig{DefaultRadiusKm: 5, MinRadiusKm: 2, MaxRadiusKm: 20}
	applyProximityDefaults(p)
	if p.DefaultRadiusKm != 5 || p.MinRadiusKm != 2 || p.MaxRadiusKm != 20 {
		t.Fatalf("configured values were overridden: %+v", p)
	}
}
