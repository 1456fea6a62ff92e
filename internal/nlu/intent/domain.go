// internal/nlu/intent/domain.go
package intent

// Known domains.
const (
	DomainLocation      = "location"
	DomainEventInfo     = "event_info"
	DomainCourseInfo    = "course_info"
	DomainFeesFunding   = "fees_funding"
	DomainAccommodation = "accommodation"
	DomainITSupport     = "it_support"
	DomainLibrary       = "library"
)

// DomainFor maps a fine-grained intent label to its coarse domain. The table
// is fixed and not configurable. Any unknown or empty intent maps to the
// empty string (no domain).
func DomainFor(intent string) string {
	switch intent {
	case "ask_location", "ask_directions":
		return DomainLocation
	case "ask_time":
		return DomainEventInfo
	case "ask_entry_requirements", "ask_course_info":
		return DomainCourseInfo
	case "ask_fees", "ask_funding":
		return DomainFeesFunding
	case "ask_accommodation":
		return DomainAccommodation
	case "ask_it_help":
		return DomainITSupport
	case "ask_library":
		return DomainLibrary
	}
	return ""
}
