package main

import (
	"postbook/internal/service"

	"github.com/spf13/cobra"
)

func newPostCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Manage posts",
	}
	cmd.AddCommand(
		newPostCreateCmd(a),
		newPostEditCmd(a),
		newPostShowCmd(a),
		newPostListCmd(a),
		newPostDeleteCmd(a),
	)
	return cmd
}

func newPostCreateCmd(a *app) *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := optionalID(cmd, "user")
			if err != nil {
				return err
			}
			view, err := a.posts.Create(cmd.Context(), service.CreatePostInput{UserID: userID, Content: content})
			if err != nil {
				return err
			}
			return a.print(cmd, view)
		},
	}
	cmd.Flags().Uint("user", 0, "author id (omit for an unattached post)")
	cmd.Flags().StringVar(&content, "content", "", "post text")
	return cmd
}

func newPostEditCmd(a *app) *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace a post's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actor, err := optionalID(cmd, "as")
			if err != nil {
				return err
			}
			view, err := a.posts.UpdateContent(cmd.Context(), service.UpdatePostInput{ActorID: actor, PostID: id, Content: content})
			if err != nil {
				return err
			}
			return a.print(cmd, view)
		},
	}
	cmd.Flags().Uint("as", 0, "acting user id; when set, only the author may edit")
	cmd.Flags().StringVar(&content, "content", "", "new post text")
	return cmd
}

func newPostShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a post with its author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view, err := a.posts.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(cmd, view)
		},
	}
}

func newPostListCmd(a *app) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := optionalID(cmd, "user")
			if err != nil {
				return err
			}
			if userID != nil {
				posts, err := a.posts.ListByUser(cmd.Context(), *userID, limit, offset)
				if err != nil {
					return err
				}
				return a.print(cmd, posts)
			}
			posts, err := a.posts.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			return a.print(cmd, posts)
		},
	}
	cmd.Flags().Uint("user", 0, "only posts by this user")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of posts")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of posts to skip")
	return cmd
}

func newPostDeleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actor, err := optionalID(cmd, "as")
			if err != nil {
				return err
			}
			if err := a.posts.Delete(cmd.Context(), service.DeletePostInput{ActorID: actor, PostID: id}); err != nil {
				return err
			}
			cmd.PrintErrf("post %d deleted\n", id)
			return nil
		},
	}
	cmd.Flags().Uint("as", 0, "acting user id; when set, only the author may delete")
	return cmd
}
