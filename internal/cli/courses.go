package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyshelf/backend/internal/client"
)

func newCoursesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List and manage courses",
	}
	cmd.AddCommand(
		newCoursesListCmd(a),
		newCoursesShowCmd(a),
		newCoursesCreateCmd(a),
		newCoursesEditCmd(a),
		newCoursesDeleteCmd(a),
	)
	return cmd
}

func newCoursesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses := a.store.Courses()
			if len(courses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No courses yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tLESSONS")
			for _, c := range courses {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", c.ID, c.Title, len(c.Lessons))
			}
			return tw.Flush()
		},
	}
}

func newCoursesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <course-id>",
		Short: "Show a course and its lessons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, ok := a.store.Course(args[0])
			if !ok {
				return client.ErrCourseNotFound
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", course.Title, course.ID)
			if course.Description != "" {
				fmt.Fprintln(out, course.Description)
			}
			if len(course.Lessons) == 0 {
				fmt.Fprintln(out, "No lessons yet")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tTYPE\tTITLE")
			for i, l := range course.Lessons {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, l.ID, l.Type, l.Title)
			}
			return tw.Flush()
		},
	}
}

func newCoursesCreateCmd(a *app) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.store.CreateCourse(cmd.Context(), title, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created course %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "course title")
	cmd.Flags().StringVar(&description, "description", "", "course description")
	return cmd
}

func newCoursesEditCmd(a *app) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <course-id>",
		Short: "Change the title or description of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, ok := a.store.Course(args[0])
			if !ok {
				return client.ErrCourseNotFound
			}
			if !cmd.Flags().Changed("title") {
				title = course.Title
			}
			if !cmd.Flags().Changed("description") {
				description = course.Description
			}

			if err := a.store.UpdateCourse(cmd.Context(), course.ID, title, description); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated course %s\n", course.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new course title")
	cmd.Flags().StringVar(&description, "description", "", "new course description")
	return cmd
}

func newCoursesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <course-id>",
		Short: "Delete a course and all of its lessons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.DeleteCourse(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted course %s\n", args[0])
			return nil
		},
	}
}
