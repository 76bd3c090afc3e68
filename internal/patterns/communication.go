package patterns

import (
	"sort"
	"strings"
)

// CommPattern is a detected communication pattern with its raw usage count
type CommPattern struct {
	Name       string   `json:"name"`
	Evidence   []string `json:"evidence"`
	UsageCount int      `json:"usageCount"`
}

// commSignature pairs a communication-pattern name with its substring
// signatures. Order is the declaration order used for tie-breaking.
type commSignature struct {
	name       string
	signatures []string
}

var communicationCatalog = []commSignature{
	{"Channel-based (tokio)", []string{"tokio::sync::mpsc", "tokio::sync::oneshot", "tokio::sync::broadcast"}},
	{"Channel-based (crossbeam)", []string{"crossbeam-channel", "crossbeam::channel"}},
	{"Shared State (Mutex)", []string{"Arc<Mutex", "Mutex<", "std::sync::Mutex"}},
	{"Shared State (RwLock)", []string{"Arc<RwLock", "RwLock<", "std::sync::RwLock"}},
	{"Async Channels", []string{"async_channel", "flume"}},
	{"Message Passing", []string{"actix", "xactor", "ractor"}},
}

// DetectCommunication finds communication patterns in the combined source
// and manifest text, sorted by usage count descending.
func DetectCommunication(corpus string, manifest string) []CommPattern {
	combined := corpus + manifest

	var detected []CommPattern
	for _, cs := range communicationCatalog {
		var found []string
		usage := 0
		for _, sig := range cs.signatures {
			if strings.Contains(combined, sig) {
				found = append(found, sig)
				usage += strings.Count(combined, sig)
			}
		}
		if len(found) > 0 {
			detected = append(detected, CommPattern{
				Name:       cs.name,
				Evidence:   found,
				UsageCount: usage,
			})
		}
	}

	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].UsageCount > detected[j].UsageCount
	})

	return detected
}
