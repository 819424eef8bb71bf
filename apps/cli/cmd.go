package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/sysregister/sysregister/core"
	"github.com/sysregister/sysregister/core/classeviva"
	"github.com/sysregister/sysregister/services/webapi"
	"github.com/sysregister/sysregister/storage/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in; run: sysregister login -username UID")
)

type commandLine struct {
	facade *classeviva.Facade
	web    *webapi.Provider
	store  *session.Store
	log    core.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -username UID         - log in (password prompted); use demo/demo to try demo mode")
	fmt.Println("  status                      - verify the stored session")
	fmt.Println("  dashboard                   - aggregate overview (grades, absences, today's lessons)")
	fmt.Println("  grades                      - list grades")
	fmt.Println("  absences                    - list absences")
	fmt.Println("  lessons [-start X -end Y]   - today's lessons, or a YYYYMMDD range")
	fmt.Println("  agenda -begin X -end Y      - agenda for a YYYYMMDD range")
	fmt.Println("  notices                     - noticeboard")
	fmt.Println("  subjects                    - subjects and teachers")
	fmt.Println("  periods                     - school periods")
	fmt.Println("  export [-months N] [-out F] - download the agenda as an ICS calendar")
	fmt.Println("  logout                      - clear the stored session")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "login":
		loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
		uname := loginCmd.String("username", "", "ClasseViva username (or a demo identity)")
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return err
		}
		return cli.login(ctx, core.CleanString(*uname), string(pwd))

	case "status":
		return cli.status(ctx)

	case "dashboard":
		return cli.dashboard(ctx)

	case "grades":
		return cli.grades(ctx)

	case "absences":
		return cli.absences(ctx)

	case "lessons":
		lessonsCmd := flag.NewFlagSet("lessons", flag.ExitOnError)
		start := lessonsCmd.String("start", "", "range start (YYYYMMDD)")
		end := lessonsCmd.String("end", "", "range end (YYYYMMDD)")
		if err := lessonsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.lessons(ctx, *start, *end)

	case "agenda":
		agendaCmd := flag.NewFlagSet("agenda", flag.ExitOnError)
		begin := agendaCmd.String("begin", "", "range start (YYYYMMDD)")
		end := agendaCmd.String("end", "", "range end (YYYYMMDD)")
		if err := agendaCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *begin == "" || *end == "" {
			agendaCmd.Usage()
			return errHelp
		}
		return cli.agenda(ctx, *begin, *end)

	case "notices":
		return cli.notices(ctx)

	case "subjects":
		return cli.subjects(ctx)

	case "periods":
		return cli.periods(ctx)

	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
		months := exportCmd.Int("months", 3, "window size in months on each side of today")
		out := exportCmd.String("out", "classeviva-agenda.ics", "output file")
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.export(ctx, *months, *out)

	case "logout":
		return cli.store.Clear()

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, uname, pwd string) error {
	sess, err := cli.facade.Login(ctx, classeviva.Credentials{UID: uname, Pass: pwd})
	if err != nil {
		return err
	}

	// avatar is best-effort: the session stays valid without one
	if avatar, err := cli.facade.GetAvatar(ctx, sess.Token); err == nil && len(avatar.Data) > 0 {
		sess.Ident.Avatar = avatar.ContentType
	} else if err != nil {
		cli.log.Warn("failed to load avatar", err)
	}

	if err := cli.store.Save(sess.Token, sess.Ident); err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s!\n", sess.Ident.FirstName)
	return nil
}

// restoreSession loads the persisted session and verifies it; a session
// whose verification errors is cleared, forcing a fresh login.
func (cli *commandLine) restoreSession(ctx context.Context) (string, classeviva.Identity, error) {
	token, ident, ok, err := cli.store.Load()
	if err != nil {
		return "", classeviva.Identity{}, err
	}
	if !ok {
		return "", classeviva.Identity{}, errNotLoggedIn
	}
	if _, err := cli.facade.AuthStatus(ctx, token); err != nil {
		_ = cli.store.Clear()
		return "", classeviva.Identity{}, errNotLoggedIn
	}
	return token, ident, nil
}

func (cli *commandLine) status(ctx context.Context) error {
	_, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s %s (id %d, type %s)\n", ident.FirstName, ident.LastName, ident.ID, ident.UsrType)
	if cli.facade.UsingMockData() {
		fmt.Println("(demo mode: serving mock data)")
	}
	return nil
}

func (cli *commandLine) dashboard(ctx context.Context) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	stats := cli.facade.Dashboard(ctx, token, ident.UsrID)
	fmt.Printf("Welcome back, %s!\n", ident.FirstName)
	fmt.Printf("  grades:        %d (average %.2f)\n", stats.TotalGrades, stats.AverageGrade)
	fmt.Printf("  absences:      %d\n", stats.TotalAbsences)
	fmt.Printf("  lessons today: %d\n", stats.TodayLessons)
	return nil
}

func (cli *commandLine) grades(ctx context.Context) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	grades, err := cli.facade.GetGrades(ctx, token, ident.UsrID)
	if err != nil {
		return err
	}
	for _, g := range grades {
		note := ""
		if g.Canceled {
			note = " (canceled)"
		}
		fmt.Printf("%s  %-20s %-4s %s%s\n", g.EvtDate, g.SubjectDesc, g.DisplayValue, g.NotesForFamily, note)
	}
	return nil
}

func (cli *commandLine) absences(ctx context.Context) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	absences, err := cli.facade.GetAbsences(ctx, token, ident.UsrID)
	if err != nil {
		return err
	}
	for _, a := range absences {
		justif := "not justified"
		if a.IsJustified {
			justif = "justified: " + a.JustifReasonDesc
		}
		fmt.Printf("%s  %-22s %s\n", a.EvtDate, a.EvtValue, justif)
	}
	return nil
}

func (cli *commandLine) lessons(ctx context.Context, start, end string) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	var lessons []classeviva.Lesson
	if start != "" && end != "" {
		lessons, err = cli.facade.GetLessons(ctx, token, ident.UsrID, start, end)
	} else {
		lessons, err = cli.facade.GetLessonsToday(ctx, token, ident.UsrID)
	}
	if err != nil {
		return err
	}
	for _, l := range lessons {
		fmt.Printf("%s h%d  %-20s %s\n", l.EvtDate, l.EvtHPos, l.SubjectDesc, l.LessonArg)
	}
	return nil
}

func (cli *commandLine) agenda(ctx context.Context, begin, end string) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	events, err := cli.facade.GetAgenda(ctx, token, ident.UsrID, begin, end)
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Printf("%s  %-20s %s\n", e.EvtDatetimeBegin, e.SubjectDesc, e.EvtText)
	}
	return nil
}

func (cli *commandLine) notices(ctx context.Context) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	notices, err := cli.facade.GetNotices(ctx, token, ident.UsrID)
	if err != nil {
		return err
	}
	for _, n := range notices {
		read := " "
		if !n.ReadStatus {
			read = "*"
		}
		fmt.Printf("%s %s  [%s] %s\n", read, n.PubDT, n.CntCategory, n.CntTitle)
	}
	return nil
}

func (cli *commandLine) subjects(ctx context.Context) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	subjects, err := cli.facade.GetSubjects(ctx, token, ident.UsrID)
	if err != nil {
		return err
	}
	for _, s := range subjects {
		fmt.Printf("%-20s", s.Description)
		for i, t := range s.Teachers {
			if i > 0 {
				fmt.Print(",")
			}
			fmt.Printf(" %s", t.TeacherName)
		}
		fmt.Println()
	}
	return nil
}

func (cli *commandLine) periods(ctx context.Context) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}
	periods, err := cli.facade.GetPeriods(ctx, token, ident.UsrID)
	if err != nil {
		return err
	}
	for _, p := range periods {
		fmt.Printf("%-22s %s - %s\n", p.Description, p.Start, p.End)
	}
	return nil
}

func (cli *commandLine) export(ctx context.Context, months int, out string) error {
	token, ident, err := cli.restoreSession(ctx)
	if err != nil {
		return err
	}

	// export always hits the dedicated server route; there is no mock
	// calendar document.
	doc, err := cli.web.ExportCalendar(ctx, token, ident.UsrID, months)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return errors.Wrap(err, "writing calendar file")
	}
	fmt.Printf("Exported agenda to %s (%s)\n", out, time.Now().Format("2006-01-02 15:04"))
	return nil
}
