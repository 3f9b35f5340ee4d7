package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vaultpass/toolbox/internal/config"
	"github.com/vaultpass/toolbox/internal/crypto"
	"github.com/vaultpass/toolbox/internal/model"
	"github.com/vaultpass/toolbox/internal/repl"
	"github.com/vaultpass/toolbox/internal/service"
)

type options struct {
	Password passwordCommand `command:"password" alias:"pw" description:"Generate random passwords"`
	CEP      cepCommand      `command:"cep" description:"Look up a Brazilian postal code"`
	Quote    quoteCommand    `command:"quote" description:"Look up the latest BRL quote of a currency"`
	Profile  profileCommand  `command:"profile" description:"Generate a random user profile"`
	Token    tokenCommand    `command:"token" description:"Issue an API token"`
	Hash     hashCommand     `command:"hash" description:"Hash a password read from stdin with argon2id"`
}

func newOptions(a *app) *options {
	return &options{
		Password: passwordCommand{app: a},
		CEP:      cepCommand{app: a},
		Quote:    quoteCommand{app: a},
		Profile:  profileCommand{app: a},
		Token:    tokenCommand{app: a},
		Hash:     hashCommand{app: a},
	}
}

type passwordCommand struct {
	app *app

	Length int  `short:"l" long:"length" description:"Password length; omit to be prompted"`
	Count  int  `short:"c" long:"count" default:"1" description:"Number of passwords (at most 50, or 5 with --hash)"`
	Hash   bool `long:"hash" description:"Also print the argon2id hash of each password"`
}

func (c *passwordCommand) Execute([]string) error {
	if c.Length == 0 {
		return repl.PasswordShell(c.app.gen).Run(c.app.ctx, c.app.in, c.app.out)
	}

	svc := service.NewGeneratorService(c.app.gen, c.app.hasher)
	resp, err := svc.Generate(model.GenerateRequest{Length: c.Length, Count: c.Count, Hash: c.Hash})
	if err != nil {
		return err
	}
	for _, p := range resp.Passwords {
		if p.Hash == "" {
			fmt.Fprintln(c.app.out, p.Password)
			continue
		}
		fmt.Fprintf(c.app.out, "%s\t%s\n", p.Password, p.Hash)
	}
	return nil
}

type cepCommand struct {
	app *app

	Args struct {
		CEP string `positional-arg-name:"cep"`
	} `positional-args:"yes"`
}

func (c *cepCommand) Execute([]string) error {
	if c.Args.CEP == "" {
		return repl.CEPShell(c.app.lookup).Run(c.app.ctx, c.app.in, c.app.out)
	}
	addr, err := c.app.lookup.Address(c.app.ctx, c.Args.CEP)
	if err != nil {
		return err
	}
	repl.RenderAddress(c.app.out, addr)
	return nil
}

type quoteCommand struct {
	app *app

	Args struct {
		Code string `positional-arg-name:"code"`
	} `positional-args:"yes"`
}

func (c *quoteCommand) Execute([]string) error {
	if c.Args.Code == "" {
		return repl.QuoteShell(c.app.lookup).Run(c.app.ctx, c.app.in, c.app.out)
	}
	q, err := c.app.lookup.Quote(c.app.ctx, c.Args.Code)
	if err != nil {
		return err
	}
	repl.RenderQuote(c.app.out, q)
	return nil
}

type profileCommand struct {
	app *app

	Offline     bool `long:"offline" description:"Generate locally instead of calling randomuser.me"`
	Interactive bool `short:"i" long:"interactive" description:"Keep generating on Enter"`
}

func (c *profileCommand) Execute([]string) error {
	if c.Interactive {
		return repl.ProfileShell(c.app.lookup, c.Offline).Run(c.app.ctx, c.app.in, c.app.out)
	}
	p, err := c.app.lookup.Profile(c.app.ctx, c.Offline)
	if err != nil {
		return err
	}
	repl.RenderProfile(c.app.out, p)
	return nil
}

type tokenCommand struct {
	app *app

	Subject string        `short:"s" long:"subject" required:"true" description:"Who the token is for"`
	TTL     time.Duration `long:"ttl" description:"Token lifetime (defaults to JWT_EXPIRY)"`
}

func (c *tokenCommand) Execute([]string) error {
	if c.app.cfg.EphemeralSecret {
		return fmt.Errorf("%w: a token signed with a throwaway secret would be useless", config.ErrSecretRequired)
	}
	ttl := c.TTL
	if ttl == 0 {
		ttl = c.app.cfg.JWTExpiry
	}
	token, err := crypto.IssueToken(c.Subject, c.app.cfg.JWTSecret, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, token)
	return nil
}

type hashCommand struct {
	app *app

	Verify string `long:"verify" value-name:"PHC" description:"Check the password against this hash instead"`
}

func (c *hashCommand) Execute([]string) error {
	secret, err := readLine(c.app.ctx, c.app)
	if err != nil {
		return err
	}

	if c.Verify != "" {
		ok, err := c.app.hasher.Verify(secret, c.Verify)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("password does not match")
		}
		fmt.Fprintln(c.app.out, "match")
		return nil
	}

	phc, err := c.app.hasher.Hash(secret)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, phc)
	return nil
}

func readLine(ctx context.Context, a *app) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(a.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no input on stdin")
	}
	line := strings.TrimRight(scanner.Text(), "\r")
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}
