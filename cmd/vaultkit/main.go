// Command vaultkit is a thin interactive shell around the vault core:
// registration, two-factor login, transaction entry with encrypted notes,
// and the audit trail. It exists for local operation and demos; the core
// packages carry all the real behavior.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vaultkit/vaultkit/pkg/audit"
	"github.com/vaultkit/vaultkit/pkg/config"
	"github.com/vaultkit/vaultkit/pkg/ledger"
	"github.com/vaultkit/vaultkit/pkg/lockout"
	"github.com/vaultkit/vaultkit/pkg/logger"
	"github.com/vaultkit/vaultkit/pkg/notecipher"
	"github.com/vaultkit/vaultkit/pkg/otp"
	"github.com/vaultkit/vaultkit/pkg/qrcode"
	"github.com/vaultkit/vaultkit/pkg/redis"
	"github.com/vaultkit/vaultkit/pkg/session"
	"github.com/vaultkit/vaultkit/pkg/storage/sqlite"
)

type appConfig struct {
	DBPath string `env:"DB_PATH" envDefault:"vault.db"`
	Issuer string `env:"TOTP_ISSUER" envDefault:"vaultkit"`

	// SessionStore selects where live sessions are parked between commands:
	// "memory" or "redis".
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`

	Cipher  notecipher.Config
	Session session.Config
	Lockout lockout.Config
	Redis   redis.Config
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithDevelopment("vaultkit"))

	cipher, err := notecipher.NewFromConfig(cfg.Cipher)
	if err != nil {
		log.ErrorContext(ctx, "invalid encryption key", logger.Error(err))
		os.Exit(1)
	}

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		log.ErrorContext(ctx, "failed to open storage", logger.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	auditor := audit.NewLogger(store, audit.WithLogger(log))
	manager := session.NewManager(
		store,
		lockout.New(store, cfg.Lockout),
		auditor,
		audit.NewReader(store),
		cfg.Session,
	)
	books := ledger.NewService(store, cipher, auditor)

	memory := session.NewMemoryStore(session.WithStaleAfter(cfg.Session.IdleTimeout()))
	defer memory.Close()

	var parking session.Store = memory
	if cfg.SessionStore == "redis" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.ErrorContext(ctx, "failed to connect to redis", logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()
		parking = session.NewRedisStore(client, cfg.Session.IdleTimeout())
	}

	token, err := session.GenerateToken()
	if err != nil {
		log.ErrorContext(ctx, "failed to generate session token", logger.Error(err))
		os.Exit(1)
	}

	shell := &shell{
		manager: manager,
		books:   books,
		issuer:  cfg.Issuer,
		parking: parking,
		token:   token,
		sess:    session.NewSession(),
	}
	shell.run(ctx)
}

type shell struct {
	manager *session.Manager
	books   *ledger.Service
	issuer  string
	parking session.Store
	token   string
	sess    session.Session
}

func (sh *shell) run(ctx context.Context) {
	fmt.Println("vaultkit shell. Commands: register, login, code, add, list, audit, auditall, logout, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", sh.sess.State)
		if !scanner.Scan() {
			return
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		// Any command counts as activity; an expired session drops back to
		// anonymous before the command runs.
		var err error
		sh.sess, err = sh.manager.Touch(ctx, sh.sess)
		if errors.Is(err, session.ErrSessionExpired) {
			fmt.Println("session expired due to inactivity, please log in again")
			continue
		}

		if args[0] == "quit" || args[0] == "exit" {
			_ = sh.parking.Delete(ctx, sh.token)
			return
		}
		if msg := sh.dispatch(ctx, args); msg != "" {
			fmt.Println(msg)
		}
		if err := sh.parking.Save(ctx, sh.token, sh.sess); err != nil {
			fmt.Println("warning: failed to park session:", err)
		}
	}
}

func (sh *shell) dispatch(ctx context.Context, args []string) string {
	switch args[0] {
	case "register":
		return sh.register(ctx, args[1:])
	case "login":
		return sh.login(ctx, args[1:])
	case "code":
		return sh.code(ctx, args[1:])
	case "add":
		return sh.add(ctx, args[1:])
	case "list":
		return sh.list(ctx)
	case "audit":
		return sh.audit(ctx, false)
	case "auditall":
		return sh.audit(ctx, true)
	case "logout":
		sess, err := sh.manager.Logout(ctx, sh.sess)
		if err != nil {
			return err.Error()
		}
		sh.sess = sess
		return "logged out"
	default:
		return "unknown command: " + args[0]
	}
}

func (sh *shell) register(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return "usage: register <email> <password> [admin]"
	}

	role := session.RoleUser
	if len(args) > 2 && args[2] == "admin" {
		role = session.RoleAdmin
	}

	user, err := sh.manager.Register(ctx, args[0], args[1], role)
	if err != nil {
		return err.Error()
	}

	uri, err := otp.ProvisioningURI(user.TOTPSecret, user.Email, sh.issuer)
	if err != nil {
		return err.Error()
	}

	out := fmt.Sprintf("registered %s\nauthenticator URI: %s", user.Email, uri)
	if png, err := qrcode.Generate(uri, 0); err == nil {
		path := "qr-" + strings.ReplaceAll(user.Email, "@", "_at_") + ".png"
		if writeErr := os.WriteFile(path, png, 0o600); writeErr == nil {
			out += "\nQR code written to " + path
		}
	}
	return out
}

func (sh *shell) login(ctx context.Context, args []string) string {
	if len(args) != 2 {
		return "usage: login <email> <password>"
	}

	sess, err := sh.manager.SubmitPassword(ctx, args[0], args[1])
	if err != nil {
		return err.Error()
	}
	sh.sess = sess

	if sess.State == session.StateAuthenticated {
		return "logged in"
	}
	return "password accepted, enter your 6-digit code (code <digits>)"
}

func (sh *shell) code(ctx context.Context, args []string) string {
	if len(args) != 1 {
		return "usage: code <6 digits>"
	}

	sess, err := sh.manager.SubmitCode(ctx, sh.sess, args[0])
	sh.sess = sess
	if err != nil {
		return err.Error()
	}
	return "logged in"
}

func (sh *shell) add(ctx context.Context, args []string) string {
	if !sh.sess.IsAuthenticated() {
		return "log in first"
	}
	if len(args) < 3 {
		return "usage: add <income|expense> <amount> <category> [note...]"
	}

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "invalid amount: " + args[1]
	}

	note := strings.Join(args[3:], " ")
	tx, err := sh.books.AddTransaction(ctx, sh.sess.Email, ledger.Type(args[0]), amount, args[2], note)
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("recorded %s %.2f (%s)", tx.Type, tx.Amount, tx.Category)
}

func (sh *shell) list(ctx context.Context) string {
	if !sh.sess.IsAuthenticated() {
		return "log in first"
	}

	entries, err := sh.books.ListTransactions(ctx, sh.sess.Email, 0)
	if err != nil {
		return err.Error()
	}
	if len(entries) == 0 {
		return "no transactions"
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %-7s %10.2f  %-20s %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Type, e.Amount, e.Category, e.Note.Display())
	}
	return strings.TrimRight(b.String(), "\n")
}

func (sh *shell) audit(ctx context.Context, all bool) string {
	var (
		events []audit.Event
		err    error
	)
	if all {
		events, err = sh.manager.FullAuditTrail(ctx, sh.sess, 100)
	} else {
		events, err = sh.manager.AuditTrail(ctx, sh.sess, 50)
	}
	if err != nil {
		return err.Error()
	}
	if len(events) == 0 {
		return "no audit records"
	}

	var b strings.Builder
	for _, e := range events {
		actor := e.Actor
		if actor == "" {
			actor = "<anonymous>"
		}
		fmt.Fprintf(&b, "%s  %-25s %-25s %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), actor, e.Action, e.Metadata)
	}
	return strings.TrimRight(b.String(), "\n")
}
