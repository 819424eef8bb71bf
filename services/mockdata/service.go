// Package mockdata serves the deterministic demo dataset. It stands in for
// the real upstream whenever the caller presents demo credentials or the
// facade has degraded. Every operation sleeps an artificial delay so UI
// loading states behave realistically; two calls with the same inputs
// return the same object graph, so callers must not mutate results.
package mockdata

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/sysregister/sysregister/core"
	"github.com/sysregister/sysregister/core/classeviva"
)

var errInvalidDemoCredentials = errors.New("invalid demo credentials, use 'demo/demo' or 'student/password'")

// demo tokens are HS256 JWTs with fixed claims so the dataset stays
// deterministic; the signing key never guards anything real.
var (
	demoTokenSecret = []byte("sysregister-demo")
	demoTokenClaims = jwt.StandardClaims{
		Issuer:    "SysRegister Demo",
		Subject:   "demo-student",
		IssuedAt:  1704067200, // 2024-01-01T00:00:00Z
		ExpiresAt: 4102444800, // 2100-01-01T00:00:00Z
	}
)

type demoUser struct {
	uid       string
	passHash  []byte
	firstName string
	lastName  string
}

type Service struct {
	users []demoUser
	sleep func(time.Duration)
}

var _ classeviva.Provider = (*Service)(nil)

// NewService registers the two reserved credential pairs plus the optional
// operator-supplied override from the environment.
func NewService(demo core.DemoConfig) *Service {
	svc := &Service{sleep: time.Sleep}
	svc.addUser(classeviva.DemoUID, classeviva.DemoPass, "Marco", "Rossi")
	svc.addUser(classeviva.StudentUID, classeviva.StudentPass, "Giulia", "Bianchi")
	if demo.UID != "" && demo.Pass != "" {
		svc.addUser(demo.UID, demo.Pass, "Demo", "User")
	}
	return svc
}

// NewServiceMock skips the artificial delays; used in tests.
func NewServiceMock(demo core.DemoConfig) *Service {
	svc := NewService(demo)
	svc.sleep = func(time.Duration) {}
	return svc
}

func (svc *Service) addUser(uid, pass, firstName, lastName string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
	if err != nil {
		panic(err) // only reachable with an over-long literal
	}
	svc.users = append(svc.users, demoUser{uid: uid, passHash: hash, firstName: firstName, lastName: lastName})
}

// DemoToken returns the fixed bearer token of the demo dataset.
func DemoToken() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, demoTokenClaims)
	signed, err := token.SignedString(demoTokenSecret)
	if err != nil {
		panic(err)
	}
	return signed
}

// Login validates against the registered demo credential pairs. The dataset
// is shared; only the display name fields differ per identity.
func (svc *Service) Login(_ context.Context, creds classeviva.Credentials) (classeviva.Session, error) {
	svc.sleep(1500 * time.Millisecond)

	for _, usr := range svc.users {
		if usr.uid != creds.UID {
			continue
		}
		if bcrypt.CompareHashAndPassword(usr.passHash, []byte(creds.Pass)) != nil {
			break
		}
		sess := fixtureSession
		sess.Token = DemoToken()
		sess.Ident.FirstName = usr.firstName
		sess.Ident.LastName = usr.lastName
		return sess, nil
	}
	return classeviva.Session{}, errInvalidDemoCredentials
}

func (svc *Service) AuthStatus(context.Context, string) (classeviva.Status, error) {
	svc.sleep(500 * time.Millisecond)
	return classeviva.Status{
		"status": "valid",
		"user":   fixtureSession.Ident,
	}, nil
}

func (svc *Service) Avatar(context.Context, string) (classeviva.Avatar, error) {
	svc.sleep(300 * time.Millisecond)
	return classeviva.Avatar{Data: fixtureAvatar, ContentType: "image/svg+xml"}, nil
}

func (svc *Service) Grades(context.Context, string, int) ([]classeviva.Grade, error) {
	svc.sleep(800 * time.Millisecond)
	return fixtureGrades, nil
}

func (svc *Service) Absences(context.Context, string, int) ([]classeviva.Absence, error) {
	svc.sleep(600 * time.Millisecond)
	return fixtureAbsences, nil
}

func (svc *Service) Agenda(_ context.Context, _ string, _ int, _, _ string) ([]classeviva.AgendaEvent, error) {
	svc.sleep(700 * time.Millisecond)
	return fixtureAgenda, nil
}

func (svc *Service) LessonsToday(context.Context, string, int) ([]classeviva.Lesson, error) {
	svc.sleep(500 * time.Millisecond)
	return fixtureLessons, nil
}

func (svc *Service) Lessons(_ context.Context, _ string, _ int, _, _ string) ([]classeviva.Lesson, error) {
	svc.sleep(600 * time.Millisecond)
	return fixtureLessons, nil
}

func (svc *Service) Notices(context.Context, string, int) ([]classeviva.Notice, error) {
	svc.sleep(900 * time.Millisecond)
	return fixtureNotices, nil
}

func (svc *Service) Subjects(context.Context, string, int) ([]classeviva.Subject, error) {
	svc.sleep(400 * time.Millisecond)
	return fixtureSubjects, nil
}

func (svc *Service) Periods(context.Context, string, int) ([]classeviva.Period, error) {
	svc.sleep(300 * time.Millisecond)
	return fixturePeriods, nil
}
