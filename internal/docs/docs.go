// Package docs emits the settings.json schema documentation that ships next
// to the settings file so users can fix a rejected configuration without
// leaving the game.
package docs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileName is the documentation file written into the settings directory.
const FileName = "readme.txt"

const lockName = ".readme.lock"

const content = `=======================================================
        OpenShock Mod Configuration Documentation
=======================================================

The settings.json file configures the OpenShock trigger.
This file must follow JSON format and include the necessary fields.

-------------------------------------------------------
Supported Fields
-------------------------------------------------------

Field Name       | Type    | Required | Default           | Description
-----------------+---------+----------+-------------------+-----------------------------------------------
shockerID        | string  | Yes      | N/A               | Unique ID for the shocker device.
OpenShockToken   | string  | Yes      | N/A               | API token for the OpenShock service.
minDuration      | integer | No       | 300               | Minimum shock duration (ms). Must be >= 300.
maxDuration      | integer | No       | 30000             | Maximum shock duration (ms). Must be <= 30000.
minIntensity     | integer | No       | 1                 | Minimum shock intensity. Must be >= 1.
maxIntensity     | integer | No       | 100               | Maximum shock intensity. Must be <= 100.
customName       | string  | Yes      | N/A               | Custom name for the shock control session.
endpointDomain   | string  | No       | api.openshock.app | API endpoint domain. Defaults if not provided.

-------------------------------------------------------
Validation Rules
-------------------------------------------------------

1. Duration ranges:
   - minDuration must be >= 300.
   - maxDuration must be <= 30000.
   - minDuration must not exceed maxDuration.

2. Intensity ranges:
   - minIntensity must be >= 1.
   - maxIntensity must be <= 100.
   - minIntensity must not exceed maxIntensity.

3. Required fields:
   - shockerID, OpenShockToken, and customName are mandatory.

4. Endpoint domain:
   - If endpointDomain is missing or empty, it defaults to api.openshock.app.

-------------------------------------------------------
Example Configuration File
-------------------------------------------------------

{
    "shockerID": "7a3e1c5b-fb7c-4b1c-8b6e-6a2e1f8b7d92",
    "OpenShockToken": "your-api-token-here",
    "minDuration": 500,
    "maxDuration": 10000,
    "minIntensity": 10,
    "maxIntensity": 90,
    "customName": "ShockControl",
    "endpointDomain": "api.customdomain.com"
}

-------------------------------------------------------
Error Handling
-------------------------------------------------------

- Invalid configurations are rejected before any request is sent.
- Errors are logged and displayed in-game via pop-ups.
- Required fields must not be empty.
- Ensure endpointDomain is valid if provided.

-------------------------------------------------------

This document provides all necessary details to configure the OpenShock
trigger correctly. For further assistance, consult the OpenShock API
documentation.
`

// Write overwrites the documentation file in dir. An advisory file lock
// serializes overlapping triggers so concurrent overwrites cannot interleave.
func Write(dir string) error {
	lock := flock.New(filepath.Join(dir, lockName))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", FileName, err)
	}
	defer func() { _ = lock.Unlock() }()

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", FileName, err)
	}
	return nil
}
