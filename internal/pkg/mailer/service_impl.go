package mailer

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"sync"
)

type impl struct {
	cfg SMTPConfig
}

type SMTPConfig struct {
	Host       string
	Port       string
	Username   string
	Password   string
	Encryption string // ej: "tls"
	Address    string // From:
}

var (
	instance                Service
	once                    sync.Once
	initErr                 error
	ErrMailerNotInitialized = errors.New("mailer no inicializado")
)

// loginAuth implementa el mecanismo LOGIN que algunos servidores (Office365)
// exigen en lugar de PLAIN.
type loginAuth struct {
	username, password string
}

func LoginAuth(username, password string) smtp.Auth {
	return &loginAuth{username, password}
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	return "LOGIN", []byte{}, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if more {
		switch string(fromServer) {
		case "Username:":
			return []byte(a.username), nil
		case "Password:":
			return []byte(a.password), nil
		default:
			return nil, errors.New("respuesta desconocida del servidor")
		}
	}
	return nil, nil
}

// New crea la instancia del mailer una sola vez.
func New(cfg SMTPConfig) (Service, error) {
	once.Do(func() {
		if cfg.Host == "" ||
			cfg.Port == "" ||
			cfg.Username == "" ||
			cfg.Password == "" ||
			cfg.Encryption == "" ||
			cfg.Address == "" {

			initErr = errors.New("configuración SMTP incompleta")
			return
		}
		instance = &impl{cfg: cfg}
	})

	return instance, initErr
}

// Use devuelve la instancia ya inicializada (puede ser nil).
func Use() Service { return instance }

func validate() error {
	if instance == nil {
		return ErrMailerNotInitialized
	}
	return nil
}

// SendRaw envía un correo en crudo (HTML o texto).
func (m *impl) SendRaw(to, subject, body string) error {
	if err := validate(); err != nil {
		return err
	}

	msg := []byte(
		"From: " + m.cfg.Address + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-version: 1.0;\r\n" +
			"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
			body,
	)

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	if m.cfg.Encryption == "tls" {
		if err := m.sendWithStartTLS(addr, to, msg); err != nil {
			return err
		}
		return nil
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.Address, []string{to}, msg); err != nil {
		return fmt.Errorf("error al enviar correo vía %s: %w", addr, err)
	}

	return nil
}

// sendWithStartTLS envía usando STARTTLS con auth LOGIN.
func (m *impl) sendWithStartTLS(addr, to string, msg []byte) error {
	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial error: %w", err)
	}
	defer c.Close()

	if err = c.Hello("localhost"); err != nil {
		return fmt.Errorf("smtp hello error: %w", err)
	}

	tlsConfig := &tls.Config{
		ServerName: m.cfg.Host,
	}
	if err = c.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("smtp starttls error: %w", err)
	}

	auth := LoginAuth(m.cfg.Username, m.cfg.Password)

	if err = c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth error: %w", err)
	}

	if err = c.Mail(m.cfg.Address); err != nil {
		return fmt.Errorf("smtp mail error: %w", err)
	}
	if err = c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt error: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data error: %w", err)
	}
	if _, err = wc.Write(msg); err != nil {
		_ = wc.Close()
		return fmt.Errorf("smtp write error: %w", err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("smtp close data error: %w", err)
	}

	// El correo ya salió; un error en el QUIT no lo invalida.
	_ = c.Quit()

	return nil
}

// SendTemplate envía un correo renderizando una plantilla HTML.
func (m *impl) SendTemplate(to, subject string, tpl string, data interface{}) error {
	if err := validate(); err != nil {
		return err
	}

	t, err := template.New("email").Parse(tpl)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}

	return m.SendRaw(to, subject, buf.String())
}
