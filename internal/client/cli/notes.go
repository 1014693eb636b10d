package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dreamnotes/internal/client/api"
)

func parseNoteID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a numeric note id, got %q", arg)
	}
	return id, nil
}

func printNote(n *api.Note) {
	fmt.Printf("#%d  %s\n", n.ID, n.Title)
	if len(n.Tags) > 0 {
		fmt.Printf("tags: %s\n", strings.Join(n.Tags, " "))
	}
	fmt.Println(n.Content)
	fmt.Printf("created %s, updated %s\n",
		n.CreatedAt.Local().Format("2006-01-02 15:04"),
		n.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

func printNoteList(notes []api.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes")
		return
	}
	for _, n := range notes {
		line := fmt.Sprintf("#%d  %s", n.ID, n.Title)
		if len(n.Tags) > 0 {
			line += "  [" + strings.Join(n.Tags, " ") + "]"
		}
		fmt.Println(line)
	}
}

func (a *App) AddNote(ctx context.Context) error {

	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	note, err := a.client.CreateNote(ctx, title, content, tags)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Created note #%d\n", note.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	notes, err := a.client.ListNotes(ctx, 0, 0)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	printNoteList(notes)
	return nil
}

func (a *App) ListByTag(ctx context.Context, tag string) error {
	if tag == "" {
		fmt.Println("Usage: tag <tag>")
		return nil
	}
	notes, err := a.client.ListNotesByTag(ctx, tag, 0, 0)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	printNoteList(notes)
	return nil
}

func (a *App) Show(ctx context.Context, arg string) error {
	id, err := parseNoteID(arg)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	note, err := a.client.GetNote(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	printNote(note)
	return nil
}

// UpdateNote edits a note interactively. An empty answer leaves the
// corresponding field unchanged.
func (a *App) UpdateNote(ctx context.Context, arg string) error {
	id, err := parseNoteID(arg)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	var patch api.NotePatch

	title, err := GetSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	if title != "" {
		patch.Title = &title
	}

	content, err := GetMultiline(a.reader, "New content (empty to keep)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	if content != "" {
		patch.Content = &content
	}

	tagLine, err := GetSimpleText(a.reader, "New tags, space separated (empty to keep, '-' to clear)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	switch tagLine {
	case "":
	case "-":
		empty := []string{}
		patch.Tags = &empty
	default:
		tags := strings.Fields(tagLine)
		patch.Tags = &tags
	}

	note, err := a.client.UpdateNote(ctx, id, patch)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	printNote(note)
	return nil
}

func (a *App) DeleteNote(ctx context.Context, arg string) error {
	id, err := parseNoteID(arg)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.client.DeleteNote(ctx, id); err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Deleted note #%d\n", id)
	return nil
}
