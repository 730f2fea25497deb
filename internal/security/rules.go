// Package security implements heuristic scans over the latest snapshot
// and the filesystem: suspicious process names, excessive resource use,
// suspicious files, and network-throughput anomalies.
package security

// RuleSet holds every denylist and threshold the scans consult. Rules are
// plain data so tests can substitute deterministic fixtures instead of
// depending on real host state.
type RuleSet struct {
	// ProcessNamePatterns flag a process whose lower-cased name contains
	// any of these substrings.
	ProcessNamePatterns []string

	// FileExtensions and FileNamePatterns flag files during the
	// filesystem scan. Extensions match case-insensitively without the
	// leading dot; name patterns are substrings of the lower-cased name.
	FileExtensions   []string
	FileNamePatterns []string

	// BrowserNames identify browser processes for the memory
	// recommendation rule.
	BrowserNames []string

	// HighCPUPercent flags a process using more CPU than this.
	HighCPUPercent float64

	// MemoryShareDivisor flags a process using more than
	// total_memory / MemoryShareDivisor bytes.
	MemoryShareDivisor uint64

	// NetworkBaselineMultiplier flags an interface whose current combined
	// throughput strictly exceeds multiplier x historical baseline.
	NetworkBaselineMultiplier float64

	// BrowserMemoryBytes is the per-browser-process memory level that
	// triggers the browser recommendation.
	BrowserMemoryBytes uint64
}

// DefaultRules returns the built-in heuristics.
func DefaultRules() RuleSet {
	return RuleSet{
		ProcessNamePatterns: []string{
			"cryptominer", "miner", "malware", "suspicious",
			"temp", "tmp", "hack", "crack", "keylog",
		},
		FileExtensions: []string{
			"virus", "malware", "ransomware", "encrypted",
			"suspicious", "backdoor", "trojan", "keylog",
		},
		FileNamePatterns: []string{
			"backdoor", "exploit", "hack", "crack", "steal",
			"keylog", "malicious", "virus", "trojan",
		},
		BrowserNames: []string{
			"chrome", "chromium", "firefox", "msedge", "safari",
			"opera", "brave", "vivaldi",
		},
		HighCPUPercent:            90.0,
		MemoryShareDivisor:        10,
		NetworkBaselineMultiplier: 2.0,
		BrowserMemoryBytes:        1 << 30,
	}
}
