package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyshelf/backend/internal/client"
	"github.com/studyshelf/backend/internal/ingest"
	"github.com/studyshelf/backend/internal/models"
)

type lessonFlags struct {
	title   string
	youtube string
	file    string
}

func (f *lessonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "lesson title")
	cmd.Flags().StringVar(&f.youtube, "youtube", "", "YouTube link, video id or iframe snippet")
	cmd.Flags().StringVar(&f.file, "file", "", "local file to embed (max 10MB)")
	cmd.MarkFlagsMutuallyExclusive("youtube", "file")
}

// content builds the lesson content from --youtube or --file.
// ok is false when neither was given.
func (f *lessonFlags) content() (in client.LessonInput, ok bool, err error) {
	switch {
	case f.youtube != "":
		return client.LessonInput{Type: models.LessonTypeYouTube, Content: f.youtube}, true, nil
	case f.file != "":
		file, err := ingest.EncodeFile(f.file)
		if err != nil {
			return client.LessonInput{}, false, err
		}
		return client.LessonInput{Type: models.LessonTypeFile, Content: file.DataURI, FileName: file.Name}, true, nil
	}
	return client.LessonInput{}, false, nil
}

func newLessonsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "Add, edit, remove and play lessons",
	}
	cmd.AddCommand(
		newLessonsAddCmd(a),
		newLessonsEditCmd(a),
		newLessonsDeleteCmd(a),
		newLessonsPlayCmd(a),
	)
	return cmd
}

func newLessonsAddCmd(a *app) *cobra.Command {
	var flags lessonFlags

	cmd := &cobra.Command{
		Use:   "add <course-id>",
		Short: "Append a lesson to a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, ok, err := flags.content()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: one of --youtube or --file is required", client.ErrValidation)
			}
			in.Title = flags.title

			id, err := a.store.AddLesson(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added lesson %s\n", id)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newLessonsEditCmd(a *app) *cobra.Command {
	var flags lessonFlags

	cmd := &cobra.Command{
		Use:   "edit <course-id> <lesson-id>",
		Short: "Replace the title or content of a lesson",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, found := a.store.Lesson(args[0], args[1])
			if !found {
				return client.ErrLessonNotFound
			}

			in, ok, err := flags.content()
			if err != nil {
				return err
			}
			if !ok {
				in = client.LessonInput{Type: current.Type, Content: current.Content, FileName: current.FileName}
			}
			in.Title = current.Title
			if cmd.Flags().Changed("title") {
				in.Title = flags.title
			}

			if err := a.store.EditLesson(cmd.Context(), args[0], args[1], in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated lesson %s\n", args[1])
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newLessonsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <course-id> <lesson-id>",
		Short: "Remove a lesson from a course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.DeleteLesson(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted lesson %s\n", args[1])
			return nil
		},
	}
}

func newLessonsPlayCmd(a *app) *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "play <course-id> <lesson-id>",
		Short: "Show how a lesson is played, optionally saving file content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lesson, ok := a.store.Lesson(args[0], args[1])
			if !ok {
				return client.ErrLessonNotFound
			}

			out := cmd.OutOrStdout()
			player := client.PlayerView(lesson)
			fmt.Fprintln(out, lesson.Title)

			switch player.Kind {
			case client.PlayerEmbed:
				fmt.Fprintf(out, "Embed: %s\n", player.Source)
				if save != "" {
					return errors.New("--save only applies to file lessons")
				}
				return nil
			case client.PlayerImage:
				fmt.Fprintf(out, "Image: %s\n", player.FileName)
			default:
				fmt.Fprintf(out, "Download: %s\n", player.FileName)
			}

			if save == "" {
				return nil
			}
			if err := ingest.SaveTo(player.Source, save); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved to %s\n", save)
			return nil
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "write the decoded file to this path")
	return cmd
}
