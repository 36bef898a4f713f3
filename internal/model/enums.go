package model

// Role of an account. Admins also carry a mentor profile so they can act
// as instructors, mirroring how drop zones actually staff admin accounts.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMentor, RoleMentee, RoleAdmin:
		return true
	}
	return false
}

// Status of an attendance request or assignment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions is the allowed transition table. declined and
// cancelled are terminal.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusDeclined, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ComfortLevel is a mentee's self-reported comfort in freefall.
type ComfortLevel string

const (
	ComfortLow    ComfortLevel = "low"
	ComfortMedium ComfortLevel = "medium"
	ComfortHigh   ComfortLevel = "high"
)

func (c ComfortLevel) Valid() bool {
	switch c {
	case ComfortLow, ComfortMedium, ComfortHigh:
		return true
	}
	return false
}

// Category groups progression steps by skill area.
type Category string

const (
	Category2Way   Category = "2way"
	Category3Way   Category = "3way"
	Category4Way   Category = "4way"
	CategoryCanopy Category = "canopy"
	CategorySafety Category = "safety"
)

func (c Category) Valid() bool {
	switch c {
	case Category2Way, Category3Way, Category4Way, CategoryCanopy, CategorySafety:
		return true
	}
	return false
}
