package classeviva

import "context"

// Reserved demo identities. Logging in as one of these bypasses the real
// upstream entirely.
const (
	DemoUID     = "demo"
	DemoPass    = "demo"
	StudentUID  = "student"
	StudentPass = "password"
)

// IsDemoUID reports whether uid is one of the reserved demo identifiers.
// extra allows an operator-supplied override uid to be treated the same.
func IsDemoUID(uid string, extra ...string) bool {
	if uid == DemoUID || uid == StudentUID {
		return true
	}
	for _, e := range extra {
		if e != "" && uid == e {
			return true
		}
	}
	return false
}

// Provider is any source of ClasseViva data: the real web API or the
// deterministic mock dataset.
type Provider interface {
	Login(ctx context.Context, creds Credentials) (Session, error)
	AuthStatus(ctx context.Context, token string) (Status, error)
	Avatar(ctx context.Context, token string) (Avatar, error)
	Grades(ctx context.Context, token string, studentID int) ([]Grade, error)
	Absences(ctx context.Context, token string, studentID int) ([]Absence, error)
	Agenda(ctx context.Context, token string, studentID int, begin, end string) ([]AgendaEvent, error)
	LessonsToday(ctx context.Context, token string, studentID int) ([]Lesson, error)
	Lessons(ctx context.Context, token string, studentID int, start, end string) ([]Lesson, error)
	Notices(ctx context.Context, token string, studentID int) ([]Notice, error)
	Subjects(ctx context.Context, token string, studentID int) ([]Subject, error)
	Periods(ctx context.Context, token string, studentID int) ([]Period, error)
}
