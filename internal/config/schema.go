package config

// configSchema is the JSON Schema the raw config document must satisfy
// before it is decoded into Config. It catches structural mistakes
// (wrong types, unknown sections) with positional error messages that a
// struct decode would swallow or misreport.
const configSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"server": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"addr": {"type": "string"},
				"readTimeout": {"type": "string"},
				"writeTimeout": {"type": "string"},
				"allowOrigins": {
					"type": "array",
					"items": {"type": "string"}
				},
				"logMode": {"type": "string", "enum": ["development", "production"]}
			}
		},
		"upstream": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"baseUrl": {"type": "string"},
				"timeout": {"type": "string"},
				"proxyUrl": {"type": "string"},
				"insecureTls": {"type": "boolean"},
				"userAgent": {"type": "string"}
			}
		}
	}
}`
