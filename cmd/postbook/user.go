package main

import (
	"bufio"
	"errors"
	"strings"

	"postbook/internal/views"

	"github.com/spf13/cobra"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(
		newUserCreateCmd(a),
		newUserLoginCmd(a),
		newUserPasswdCmd(a),
		newUserShowCmd(a),
		newUserListCmd(a),
		newUserDeleteCmd(a),
	)
	return cmd
}

// addPasswordFlags registers --<name> and --<name>-stdin on cmd.
func addPasswordFlags(cmd *cobra.Command, name, usage string) {
	cmd.Flags().String(name, "", usage)
	cmd.Flags().Bool(name+"-stdin", false, "read the "+name+" from the first line of stdin")
}

// readPassword returns the --<name> flag, or the next stdin line when --<name>-stdin is set.
func readPassword(cmd *cobra.Command, in *bufio.Reader, name string) (string, error) {
	fromStdin, _ := cmd.Flags().GetBool(name + "-stdin")
	if !fromStdin {
		return cmd.Flags().GetString(name)
	}
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no " + name + " on stdin")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newUserCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create USERNAME",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, bufio.NewReader(cmd.InOrStdin()), "password")
			if err != nil {
				return err
			}
			user, err := a.users.Register(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			return a.print(cmd, views.NewUserView(user))
		},
	}
	addPasswordFlags(cmd, "password", "password for the new user")
	return cmd
}

func newUserLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login USERNAME",
		Short: "Check a username and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, bufio.NewReader(cmd.InOrStdin()), "password")
			if err != nil {
				return err
			}
			user, err := a.users.Authenticate(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			return a.print(cmd, &views.UserViewForPost{ID: user.ID, Username: user.Username})
		},
	}
	addPasswordFlags(cmd, "password", "password to check")
	return cmd
}

func newUserPasswdCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd ID",
		Short: "Change a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			current, err := readPassword(cmd, in, "old")
			if err != nil {
				return err
			}
			next, err := readPassword(cmd, in, "new")
			if err != nil {
				return err
			}
			if err := a.users.ChangePassword(cmd.Context(), id, current, next); err != nil {
				return err
			}
			cmd.PrintErrln("password changed")
			return nil
		},
	}
	addPasswordFlags(cmd, "old", "current password")
	addPasswordFlags(cmd, "new", "new password")
	return cmd
}

func newUserShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a user with their posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view, err := a.users.GetProfile(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(cmd, view)
		},
	}
}

func newUserListCmd(a *app) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.users.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			out := make([]views.UserViewForPost, 0, len(users))
			for _, u := range users {
				out = append(out, views.UserViewForPost{ID: u.ID, Username: u.Username})
			}
			return a.print(cmd, out)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of users")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of users to skip")
	return cmd
}

func newUserDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user; their posts are kept without an author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.users.Delete(cmd.Context(), id); err != nil {
				return err
			}
			cmd.PrintErrf("user %d deleted\n", id)
			return nil
		},
	}
}
