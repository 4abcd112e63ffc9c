package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/madik/projectdesk/internal/client"
	"github.com/madik/projectdesk/internal/console"
	"github.com/madik/projectdesk/internal/model"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "projectdesk-admin",
		Usage: "admin console for the projectdesk service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "base URL of the projectdesk service",
				EnvVars: []string{"PROJECTDESK_API_URL"},
				Value:   "http://localhost:7080",
			},
			&cli.StringFlag{
				Name:    "token-file",
				Usage:   "path of the persisted session token",
				EnvVars: []string{"PROJECTDESK_TOKEN_FILE"},
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			registerCommand(),
			projectsCommand(),
			paymentsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// shell wires the session, API client and view environment for one
// command invocation.
type shell struct {
	session *console.Session
	api     *client.Client
	env     console.Env
}

func newShell(c *cli.Context) (*shell, error) {
	tokenPath := c.String("token-file")
	if tokenPath == "" {
		var err error
		tokenPath, err = console.DefaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("resolve token path: %w", err)
		}
	}

	session := console.NewSession(console.NewFileTokenStore(tokenPath))
	api := client.New(c.String("api-url"), session)

	return &shell{
		session: session,
		api:     api,
		env: console.Env{
			API:     api,
			Session: session,
			Notify:  stdoutNotifier{},
			Confirm: stdinConfirmer{assumeYes: c.Bool("yes")},
			Navigate: func(route string) {
				fmt.Printf("-> %s\n", route)
			},
		},
	}, nil
}

// guard enforces the route gate before a protected screen runs.
func (s *shell) guard(route string) error {
	if resolved := console.Resolve(route, s.session); resolved != route {
		return fmt.Errorf("not logged in (redirected to %s)", resolved)
	}
	return nil
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "authenticate and persist the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			sh, err := newShell(c)
			if err != nil {
				return err
			}
			creds := client.Credentials{
				Username: c.String("username"),
				Password: c.String("password"),
			}
			if err := sh.api.Login(context.Background(), creds); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Println("Login successful")
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "clear the persisted session token",
		Action: func(c *cli.Context) error {
			sh, err := newShell(c)
			if err != nil {
				return err
			}
			if err := sh.session.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create a new account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			sh, err := newShell(c)
			if err != nil {
				return err
			}
			creds := client.Credentials{
				Username: c.String("username"),
				Password: c.String("password"),
			}
			if err := sh.api.Register(context.Background(), creds); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Println("Registered")
			return nil
		},
	}
}

func projectsCommand() *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "list, create and delete projects",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list projects with optional type filter and search",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Value: console.FilterAll, Usage: "ALL, STUDENT or CLIENT"},
					&cli.StringFlag{Name: "search", Usage: "match id, names or phones"},
				},
				Action: listProjectsAction,
			},
			{
				Name:   "create",
				Usage:  "create a project with its nested records",
				Flags:  createFlags(),
				Action: createProjectAction,
			},
			{
				Name:      "delete",
				Usage:     "delete a project by id",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "skip the confirmation prompt"},
				},
				Action: deleteProjectAction,
			},
			{
				Name:      "statement",
				Usage:     "download a project's payment statement PDF",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "output file", Value: "statement.pdf"},
				},
				Action: statementAction,
			},
		},
	}
}

func listProjectsAction(c *cli.Context) error {
	sh, err := newShell(c)
	if err != nil {
		return err
	}
	if err := sh.guard(console.RouteProjects); err != nil {
		return err
	}

	view := console.NewProjectListView(sh.env)
	if err := view.Load(context.Background()); err != nil {
		return err
	}
	view.SetFilterType(c.String("type"))
	view.SetSearch(c.String("search"))

	visible := view.Visible()
	if len(visible) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tPHONE\tTITLE\tTECHNOLOGY\tFEE\tSTATUS\tPAYMENT")
	for i := range visible {
		p := &visible[i]
		name, phone := p.Party()
		payment := ""
		if len(p.Payments) > 0 {
			payment = string(p.Payments[0].PaymentStatus)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			p.ID, p.ProjectType, name, phone, p.Title, p.Technology, p.TotalFee, p.Status, payment)
	}
	return w.Flush()
}

func createFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "type", Value: string(model.ProjectTypeStudent), Usage: "STUDENT or CLIENT"},
		&cli.StringFlag{Name: "title", Required: true},
		&cli.StringFlag{Name: "description", Required: true},
		&cli.StringFlag{Name: "technology", Required: true},
		&cli.Float64Flag{Name: "fee", Required: true},
		&cli.StringFlag{Name: "status", Value: string(model.ProjectStatusNotStarted)},
		&cli.StringFlag{Name: "student-name"},
		&cli.StringFlag{Name: "student-college"},
		&cli.StringFlag{Name: "student-batch"},
		&cli.StringFlag{Name: "student-phone"},
		&cli.StringFlag{Name: "student-email"},
		&cli.StringFlag{Name: "client-name"},
		&cli.StringFlag{Name: "client-company"},
		&cli.StringFlag{Name: "client-phone"},
		&cli.StringFlag{Name: "client-email"},
		&cli.StringFlag{Name: "guide-name"},
		&cli.StringFlag{Name: "guide-phone"},
		&cli.StringFlag{Name: "guide-email"},
		&cli.Float64Flag{Name: "paid"},
		&cli.StringFlag{Name: "payment-date", Usage: "YYYY-MM-DD"},
		&cli.StringFlag{Name: "payment-method"},
	}
}

func createProjectAction(c *cli.Context) error {
	sh, err := newShell(c)
	if err != nil {
		return err
	}
	if err := sh.guard(console.RouteNewProject); err != nil {
		return err
	}

	projectType, ok := model.ParseProjectType(c.String("type"))
	if !ok {
		return fmt.Errorf("invalid project type %q", c.String("type"))
	}
	status, ok := model.ParseProjectStatus(c.String("status"))
	if !ok {
		return fmt.Errorf("invalid status %q", c.String("status"))
	}

	form := console.NewCreateProjectForm(sh.env)
	form.ProjectType = projectType
	form.Title = c.String("title")
	form.Description = c.String("description")
	form.Technology = c.String("technology")
	form.Status = status
	form.SetTotalFee(c.Float64("fee"))
	form.SetPaidAmount(c.Float64("paid"))
	form.PaymentMethod = c.String("payment-method")

	if raw := c.String("payment-date"); raw != "" {
		var date model.Date
		if err := date.UnmarshalJSON([]byte(`"` + raw + `"`)); err != nil {
			return fmt.Errorf("invalid payment date %q", raw)
		}
		form.PaymentDate = &date
	}

	form.Student = model.Student{
		Name:    c.String("student-name"),
		College: c.String("student-college"),
		Batch:   c.String("student-batch"),
		Phone:   c.String("student-phone"),
		Email:   c.String("student-email"),
	}
	form.Client = model.Client{
		Name:    c.String("client-name"),
		Company: c.String("client-company"),
		Phone:   c.String("client-phone"),
		Email:   c.String("client-email"),
	}
	form.Guide = model.Guide{
		Name:  c.String("guide-name"),
		Phone: c.String("guide-phone"),
		Email: c.String("guide-email"),
	}

	created, err := form.Submit(context.Background())
	if err != nil {
		return err
	}
	paymentStatus := model.PaymentStatusPending
	if len(created.Payments) > 0 {
		paymentStatus = created.Payments[0].PaymentStatus
	}
	fmt.Printf("Created project %d (balance %.2f, %s)\n", created.ID, form.Balance(), paymentStatus)
	return nil
}

func deleteProjectAction(c *cli.Context) error {
	sh, err := newShell(c)
	if err != nil {
		return err
	}
	if err := sh.guard(console.RouteProjects); err != nil {
		return err
	}

	id, err := parseIDArg(c)
	if err != nil {
		return err
	}

	view := console.NewProjectListView(sh.env)
	if err := view.Load(context.Background()); err != nil {
		return err
	}
	return view.Delete(context.Background(), id)
}

func statementAction(c *cli.Context) error {
	sh, err := newShell(c)
	if err != nil {
		return err
	}
	if err := sh.guard(console.RouteProjects); err != nil {
		return err
	}

	id, err := parseIDArg(c)
	if err != nil {
		return err
	}

	content, err := sh.api.ProjectStatement(context.Background(), id)
	if err != nil {
		return err
	}
	out := c.String("out")
	if err := os.WriteFile(out, content, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(content))
	return nil
}

func paymentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "payments",
		Usage: "pending payments across all projects",
		Subcommands: []*cli.Command{
			{
				Name:  "pending",
				Usage: "list pending payments",
				Action: func(c *cli.Context) error {
					sh, err := newShell(c)
					if err != nil {
						return err
					}
					if err := sh.guard(console.RoutePayments); err != nil {
						return err
					}

					view := console.NewPendingPaymentsView(sh.env)
					if err := view.Load(context.Background()); err != nil {
						return err
					}
					rows := view.Rows()
					if len(rows) == 0 {
						fmt.Println("No pending payments")
						return nil
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "PROJECT\tTITLE\tNAME\tPHONE\tFEE\tPAID\tBALANCE\tDATE\tMETHOD")
					for _, row := range rows {
						date := "-"
						if row.PaymentDate != nil && !row.PaymentDate.IsZero() {
							date = row.PaymentDate.Format("2006-01-02")
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
							row.ProjectID, row.ProjectTitle, row.ContactName, row.ContactPhone,
							row.TotalFee, row.PaidAmount, row.BalanceAmount, date, row.PaymentMethod)
					}
					return w.Flush()
				},
			},
			{
				Name:  "export",
				Usage: "download the pending payments workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "output file", Value: "pending-payments.xlsx"},
				},
				Action: func(c *cli.Context) error {
					sh, err := newShell(c)
					if err != nil {
						return err
					}
					if err := sh.guard(console.RoutePayments); err != nil {
						return err
					}

					content, err := sh.api.ExportPendingPayments(context.Background())
					if err != nil {
						return err
					}
					out := c.String("out")
					if err := os.WriteFile(out, content, 0o644); err != nil {
						return err
					}
					fmt.Printf("Wrote %s (%d bytes)\n", out, len(content))
					return nil
				},
			},
		},
	}
}

func parseIDArg(c *cli.Context) (int64, error) {
	raw := strings.TrimSpace(c.Args().First())
	if raw == "" {
		return 0, fmt.Errorf("project id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid project id %q", raw)
	}
	return id, nil
}

type stdoutNotifier struct{}

func (stdoutNotifier) Success(msg string) { fmt.Println(msg) }
func (stdoutNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, msg) }

type stdinConfirmer struct {
	assumeYes bool
}

func (c stdinConfirmer) Confirm(prompt string) bool {
	if c.assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
