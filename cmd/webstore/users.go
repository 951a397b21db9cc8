package main

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newHashPasswordCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <plain>",
		Short: "Print a password hash for the bootstrap user file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHasher(st.cfg)
			if err != nil {
				return err
			}
			hash, err := h.Hash(args[0])
			if err != nil {
				return err
			}
			cmd.Println(hash)
			return nil
		},
	}
}

func newUsersCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Load the bootstrap user file and list the accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildServices(cmd.Context(), st.cfg, st.log)
			if err != nil {
				return err
			}

			users := svc.users.ListUsers(cmd.Context())
			ids := make([]string, 0, len(users))
			for id := range users {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				a, errA := strconv.Atoi(ids[i])
				b, errB := strconv.Atoi(ids[j])
				if errA == nil && errB == nil {
					return a < b
				}
				return ids[i] < ids[j]
			})

			for _, id := range ids {
				u := users[id]
				cmd.Printf("%s\t%s\t%s %s\n", u.ID, u.Email, u.FirstName, u.LastName)
			}
			return nil
		},
	}
}
