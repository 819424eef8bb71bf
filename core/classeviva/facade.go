package classeviva

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Login guidance surfaced to the user when the real service cannot be used.
// Login failures are never silently recovered into mock data: credentials
// are not assumed to be a demo identity.
const (
	blockedLoginHelp = "ClasseViva API is blocking requests from this server.\n\n" +
		"This could be due to geographic restrictions or security policies.\n\n" +
		"Try DEMO MODE to see how the app works:\n" +
		"- Username: 'demo' Password: 'demo'\n" +
		"- Username: 'student' Password: 'password'\n\n" +
		"The demo includes realistic data and all features!"

	unreachableLoginHelp = "Unable to connect to ClasseViva API.\n\n" +
		"This could be due to:\n" +
		"- Network connectivity issues\n" +
		"- Server-side blocking\n" +
		"- API maintenance\n\n" +
		"Try DEMO MODE instead:\n" +
		"Username: 'demo' | Password: 'demo'"
)

// ErrDemoRequest is the login sentinel: the server answered "use the mock
// path" instead of performing a real login.
var ErrDemoRequest = errors.New("demo mode requested")

// Facade orchestrates calls against the real provider and degrades to the
// mock provider. The degradation is one-way: once a non-login call fails,
// every later call in this process uses mock data.
type Facade struct {
	real Provider
	mock Provider

	demoUID  string // operator-supplied override, may be empty
	degraded atomic.Bool
}

func NewFacade(real, mock Provider, demoUID string) *Facade {
	return &Facade{real: real, mock: mock, demoUID: demoUID}
}

// UsingMockData reports whether the facade has degraded to the mock dataset.
func (f *Facade) UsingMockData() bool { return f.degraded.Load() }

// fallback applies the per-operation policy: mock when degraded, otherwise
// the real call with an irreversible switch to mock on any failure. The
// flag store is idempotent, so racing callers are safe.
func fallback[T any](ctx context.Context, f *Facade, real, mock func(context.Context) (T, error)) (T, error) {
	if f.degraded.Load() {
		return mock(ctx)
	}
	out, err := real(ctx)
	if err != nil {
		f.degraded.Store(true)
		return mock(ctx)
	}
	return out, nil
}

// Login exchanges credentials for a Session. Demo identities switch the
// facade to the mock path without contacting upstream; real login failures
// surface as user-facing guidance instead of falling back.
func (f *Facade) Login(ctx context.Context, creds Credentials) (Session, error) {
	if IsDemoUID(creds.UID, f.demoUID) {
		f.degraded.Store(true)
		return f.mock.Login(ctx, creds)
	}

	sess, err := f.real.Login(ctx, creds)
	if err == nil {
		return sess, nil
	}
	if errors.Cause(err) == ErrDemoRequest {
		f.degraded.Store(true)
		return f.mock.Login(ctx, creds)
	}
	switch KindOf(err) {
	case KindBlocked:
		return Session{}, errors.New(blockedLoginHelp)
	case KindNetworkFailure, KindUpstreamRejected, KindMalformedResponse:
		return Session{}, errors.New(unreachableLoginHelp)
	}
	return Session{}, err
}

func (f *Facade) AuthStatus(ctx context.Context, token string) (Status, error) {
	return fallback(ctx, f,
		func(ctx context.Context) (Status, error) { return f.real.AuthStatus(ctx, token) },
		func(ctx context.Context) (Status, error) { return f.mock.AuthStatus(ctx, token) },
	)
}

func (f *Facade) GetAvatar(ctx context.Context, token string) (Avatar, error) {
	return fallback(ctx, f,
		func(ctx context.Context) (Avatar, error) { return f.real.Avatar(ctx, token) },
		func(ctx context.Context) (Avatar, error) { return f.mock.Avatar(ctx, token) },
	)
}

func (f *Facade) GetGrades(ctx context.Context, token string, studentID int) ([]Grade, error) {
	return fallback(ctx, f,
		func(ctx context.Context) ([]Grade, error) { return f.real.Grades(ctx, token, studentID) },
		func(ctx context.Context) ([]Grade, error) { return f.mock.Grades(ctx, token, studentID) },
	)
}

func (f *Facade) GetAbsences(ctx context.Context, token string, studentID int) ([]Absence, error) {
	return fallback(ctx, f,
		func(ctx context.Context) ([]Absence, error) { return f.real.Absences(ctx, token, studentID) },
		func(ctx context.Context) ([]Absence, error) { return f.mock.Absences(ctx, token, studentID) },
	)
}

func (f *Facade) GetAgenda(ctx context.Context, token string, studentID int, begin, end string) ([]AgendaEvent, error) {
	return fallback(ctx, f,
		func(ctx context.Context) ([]AgendaEvent, error) {
			return f.real.Agenda(ctx, token, studentID, begin, end)
		},
		func(ctx context.Context) ([]AgendaEvent, error) {
			return f.mock.Agenda(ctx, token, studentID, begin, end)
		},
	)
}

func (f *Facade) GetLessonsToday(ctx context.Context, token string, studentID int) ([]Lesson, error) {
	return fallback(ctx, f,
		func(ctx context.Context) ([]Lesson, error) { return f.real.LessonsToday(ctx, token, studentID) },
		func(ctx context.Context) ([]Lesson, error) { return f.mock.LessonsToday(ctx, token, studentID) },
	)
}

func (f *Facade) GetLessons(ctx context.Context, token string, studentID int, start, end string) ([]Lesson, error) {
	return fallback(ctx, f,
		func(ctx context.Context) ([]Lesson, error) {
			return f.real.Lessons(ctx, token, studentID, start, end)
		},
		func(ctx context.Context) ([]Lesson, error) {
			return f.mock.Lessons(ctx, token, studentID, start, end)
		},
	)
}

func (f *Facade) GetNotices(ctx context.Context, token string, studentID int) ([]Notice, error) {
	return fallback(ctx, f,
		func(ctx context.Context) ([]Notice, error) { return f.real.Notices(ctx, token, studentID) },
		func(ctx context.Context) ([]Notice, error) { return f.mock.Notices(ctx, token, studentID) },
	)
}

func (f *Facade) GetSubjects(ctx context.Context, token string, studentID int) ([]Subject, error) {
	return fallback(ctx, f,
		func(ctx context.Context) ([]Subject, error) { return f.real.Subjects(ctx, token, studentID) },
		func(ctx context.Context) ([]Subject, error) { return f.mock.Subjects(ctx, token, studentID) },
	)
}

func (f *Facade) GetPeriods(ctx context.Context, token string, studentID int) ([]Period, error) {
	return fallback(ctx, f,
		func(ctx context.Context) ([]Period, error) { return f.real.Periods(ctx, token, studentID) },
		func(ctx context.Context) ([]Period, error) { return f.mock.Periods(ctx, token, studentID) },
	)
}

// upcomingWindowDays is how far ahead the dashboard counts agenda events.
const upcomingWindowDays = 7

// Dashboard issues the four aggregate fetches concurrently and waits for
// all to settle. A failed sub-fetch contributes an empty result rather than
// aborting the aggregate.
func (f *Facade) Dashboard(ctx context.Context, token string, studentID int) DashboardStats {
	var (
		wg       sync.WaitGroup
		grades   []Grade
		absences []Absence
		lessons  []Lesson
		agenda   []AgendaEvent
	)

	now := time.Now()
	begin := now.Format("20060102")
	end := now.AddDate(0, 0, upcomingWindowDays).Format("20060102")

	wg.Add(4)
	go func() {
		defer wg.Done()
		grades, _ = f.GetGrades(ctx, token, studentID)
	}()
	go func() {
		defer wg.Done()
		absences, _ = f.GetAbsences(ctx, token, studentID)
	}()
	go func() {
		defer wg.Done()
		lessons, _ = f.GetLessonsToday(ctx, token, studentID)
	}()
	go func() {
		defer wg.Done()
		agenda, _ = f.GetAgenda(ctx, token, studentID, begin, end)
	}()
	wg.Wait()

	var sum float64
	var valid int
	for _, g := range grades {
		if !g.Canceled && g.DecimalValue > 0 {
			sum += g.DecimalValue
			valid++
		}
	}
	var avg float64
	if valid > 0 {
		avg = sum / float64(valid)
	}

	return DashboardStats{
		TotalGrades:    len(grades),
		AverageGrade:   avg,
		TotalAbsences:  len(absences),
		UpcomingEvents: len(agenda),
		TodayLessons:   len(lessons),
	}
}
