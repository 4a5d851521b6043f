package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/permutecrypt/transpose/keystore"
	"github.com/permutecrypt/transpose/serial"
)

// VERSION is injected by buildflags
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "transpose"
	myApp.Usage = "classical transposition cipher recipe shell"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Value: "",
			Usage: "CLI defaults from json file, overrides nothing the user types at the prompt",
		},
		cli.StringFlag{
			Name:  "store",
			Value: "",
			Usage: "keystore path to open on startup (DATABASE <path> ANY)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "print full error chains instead of just the top message",
		},
	}
	myApp.Action = func(c *cli.Context) error {
		config := Config{}
		if c.String("config") != "" {
			if err := parseJSONConfig(&config, c.String("config")); err != nil {
				return errors.Wrap(err, "loading config")
			}
		}
		if c.String("store") != "" {
			config.Store = c.String("store")
		}
		if config.Log != "" {
			logFile, err := os.OpenFile(config.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return errors.Wrap(err, "opening log file")
			}
			defer logFile.Close()
			log.SetOutput(logFile)
		}

		session := &session{debug: c.Bool("debug"), quiet: config.Quiet}

		if config.Store != "" {
			if err := session.database(config.Store, "ANY"); err != nil {
				fmt.Println(session.format(err))
			} else {
				fmt.Println(session.format(nil))
			}
		}

		session.repl(os.Stdin, os.Stdout)
		return nil
	}

	if err := myApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// session holds the one active keystore handle a REPL run may have open,
// and formats every dispatched command's result as "OK." or
// "ERROR. <message>".
type session struct {
	store *keystore.Keystore
	debug bool
	quiet bool
}

func (s *session) format(err error) string {
	if err == nil {
		return "OK."
	}
	if s.debug {
		return fmt.Sprintf("ERROR. %+v", err)
	}
	return fmt.Sprintf("ERROR. %v", err)
}

func (s *session) repl(in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		verb := strings.ToUpper(fields[0])
		args := fields[1:]

		if verb == "EXIT" {
			return
		}

		err := s.dispatch(verb, args)
		if err != nil || !s.quiet {
			fmt.Fprintln(w, s.format(err))
			w.Flush()
		}
	}
}

func (s *session) dispatch(verb string, args []string) error {
	switch verb {
	case "DATABASE":
		if len(args) < 1 {
			return errors.New("DATABASE requires a path")
		}
		mode := "ANY"
		if len(args) > 1 {
			mode = strings.ToUpper(args[1])
		}
		return s.database(args[0], mode)
	case "SAVE":
		if err := s.requireStore(); err != nil {
			return err
		}
		return s.store.Save()
	case "RELOAD":
		if err := s.requireStore(); err != nil {
			return err
		}
		return s.store.Reload()
	case "LIST":
		if err := s.requireStore(); err != nil {
			return err
		}
		fmt.Println(strings.Join(s.store.Keys(), " "))
		return nil
	case "DESCRIBE":
		if err := s.requireStore(); err != nil {
			return err
		}
		return s.describe(args)
	case "DELETE":
		if err := s.requireStore(); err != nil {
			return err
		}
		return s.delete(args)
	case "ADD":
		if err := s.requireStore(); err != nil {
			return err
		}
		return s.add(args)
	case "ENCRYPT":
		if err := s.requireStore(); err != nil {
			return err
		}
		return s.runEncrypt(args)
	case "DECRYPT":
		if err := s.requireStore(); err != nil {
			return err
		}
		return s.runDecrypt(args)
	default:
		return errors.Errorf("unknown command %q", verb)
	}
}

func (s *session) requireStore() error {
	if s.store == nil {
		return errors.New("no database open, run DATABASE first")
	}
	return nil
}

func (s *session) database(path, mode string) error {
	var m keystore.OpenMode
	switch mode {
	case "CREATE":
		m = keystore.CreateNew
	case "LOAD":
		m = keystore.LoadExisting
	case "ANY":
		m = keystore.CreateIfAbsent
	default:
		return errors.Errorf("unknown database mode %q, expected CREATE, LOAD, or ANY", mode)
	}

	store, err := keystore.Open(path, m)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	if s.store != nil {
		s.store.Close()
	}
	s.store = store
	return nil
}

func (s *session) describe(args []string) error {
	if len(args) < 1 {
		return errors.New("DESCRIBE requires a name")
	}
	r, ok := s.store.Get(args[0])
	if !ok {
		return errors.Errorf("no recipe named %q", args[0])
	}
	fmt.Printf("%s: %d layers, fingerprint %s, wire form %s\n", args[0], r.Len(), r.Fingerprint(), r.WireForm())
	return nil
}

func (s *session) delete(args []string) error {
	if len(args) < 1 {
		return errors.New("DELETE requires a name")
	}
	if _, existed := s.store.Delete(args[0]); !existed {
		return errors.Errorf("no recipe named %q", args[0])
	}
	return nil
}

func (s *session) add(args []string) error {
	if len(args) < 2 {
		return errors.New("ADD requires a name and a recipe wire form")
	}
	wireForm := strings.Join(args[1:], " ")
	r, err := serial.Read(strings.NewReader(wireForm))
	if err != nil {
		return errors.Wrap(err, "parsing recipe")
	}
	s.store.Add(args[0], r)
	return nil
}

func (s *session) runEncrypt(args []string) error {
	name, in, out, useCompression, err := parsePayloadArgs(args)
	if err != nil {
		return err
	}
	r, ok := s.store.Get(name)
	if !ok {
		return errors.Errorf("no recipe named %q", name)
	}

	plaintext, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "reading input file")
	}
	if useCompression {
		plaintext, err = compress(plaintext)
		if err != nil {
			return errors.Wrap(err, "compressing input")
		}
	}

	tokens, ciphertext, err := r.Encrypt(plaintext)
	if err != nil {
		return errors.Wrap(err, "encrypting")
	}
	return writePayload(out, useCompression, tokens, ciphertext)
}

func (s *session) runDecrypt(args []string) error {
	name, in, out, useCompression, err := parsePayloadArgs(args)
	if err != nil {
		return err
	}
	r, ok := s.store.Get(name)
	if !ok {
		return errors.Errorf("no recipe named %q", name)
	}

	tokens, ciphertext, err := readPayload(in, useCompression)
	if err != nil {
		return err
	}
	plaintext, err := r.Decrypt(tokens, ciphertext)
	if err != nil {
		return errors.Wrap(err, "decrypting")
	}
	if useCompression {
		plaintext, err = decompress(plaintext)
		if err != nil {
			return errors.Wrap(err, "decompressing output")
		}
	}
	return os.WriteFile(out, plaintext, 0o644)
}

func parsePayloadArgs(args []string) (name, in, out string, useCompression bool, err error) {
	if len(args) < 3 {
		return "", "", "", false, errors.New("requires a name, an input file, and an output file")
	}
	name, in, out = args[0], args[1], args[2]
	for _, flag := range args[3:] {
		if flag == "--compress" {
			useCompression = true
			continue
		}
		return "", "", "", false, errors.Errorf("unknown flag %q", flag)
	}
	return name, in, out, useCompression, nil
}
