package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hormonya/hormonya/internal/model"
	"github.com/hormonya/hormonya/internal/session"
)

func newLoginCmd(opts *options) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your email",
		Long: `Sign in with your email address. A new account is created on first
use and you are asked for a short profile. Every profile question may be
left blank.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gate, _, err := opts.gate()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())

			if gate.State() == session.LoggedIn {
				return fmt.Errorf("already signed in as %s, run logout first", gate.Identity().Email)
			}

			if email == "" {
				email, err = prompt(out, in, "Email: ")
				if err != nil {
					return err
				}
			}

			state, err := gate.SubmitEmail(cmd.Context(), email)
			if err != nil {
				return err
			}

			if state == session.AwaitingProfile {
				fmt.Fprintln(out, "New account created! Tell us a little about yourself.")
				profile, err := readProfile(out, in)
				if err != nil {
					return err
				}
				if _, err := gate.SubmitProfile(cmd.Context(), profile); err != nil {
					return err
				}
			}

			fmt.Fprintf(out, "Welcome, %s!\n", gate.Identity().DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.store().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.store().Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if id == nil {
				fmt.Fprintln(out, "Not signed in.")
				return nil
			}
			fmt.Fprint(out, newStyles(out).identity(id))
			return nil
		},
	}
}

// readProfile asks the profile questions one line at a time.
func readProfile(out io.Writer, in *bufio.Reader) (session.ProfileInput, error) {
	var p session.ProfileInput
	var err error

	if p.Name, err = prompt(out, in, "Name: "); err != nil {
		return p, err
	}
	if p.Age, err = promptInt(out, in, "Age: "); err != nil {
		return p, err
	}
	if p.Gender, err = prompt(out, in, "Gender: "); err != nil {
		return p, err
	}
	if p.Height, err = promptFloat(out, in, "Height (cm): "); err != nil {
		return p, err
	}
	if p.Weight, err = promptFloat(out, in, "Weight (kg): "); err != nil {
		return p, err
	}
	return p, nil
}

func prompt(out io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptInt(out io.Writer, in *bufio.Reader, label string) (*int, error) {
	s, err := prompt(out, in, label)
	if err != nil || s == "" {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number", s)
	}
	return &n, nil
}

func promptFloat(out io.Writer, in *bufio.Reader, label string) (*float64, error) {
	s, err := prompt(out, in, label)
	if err != nil || s == "" {
		return nil, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	return &f, nil
}

func bmiLine(id *session.Identity) string {
	if id.BMI == nil {
		return ""
	}
	return fmt.Sprintf("%.1f (%s)", *id.BMI, model.BMICategory(*id.BMI))
}
