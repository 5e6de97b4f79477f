package notify

// TargetKind distinguishes the two delivery channels.
type TargetKind string

const (
	KindPhone TargetKind = "phone"
	KindGroup TargetKind = "group"
)

// Target is where a message goes: an individual phone number or a
// named group channel.
type Target struct {
	Kind    TargetKind
	Address string
}

// Phone targets an individual phone number
func Phone(number string) Target {
	return Target{Kind: KindPhone, Address: number}
}

// Group targets a named group channel
func Group(id string) Target {
	return Target{Kind: KindGroup, Address: id}
}

// Notifier is the best-effort outbound messaging contract the services
// depend on. Implementations must never block the caller and never
// report delivery failure back.
type Notifier interface {
	Notify(target Target, message string)
}
