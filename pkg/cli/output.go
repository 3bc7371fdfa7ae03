package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

var (
	personaColor = color.New(color.FgCyan, color.Bold)
	headerColor  = color.New(color.FgYellow, color.Bold)
	mutedColor   = color.New(color.Faint)
	warnColor    = color.New(color.FgRed)
)

func writerOf(c *cli.Command) io.Writer {
	if root := c.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func printReply(w io.Writer, reply *model.ChatReply) {
	personaColor.Fprintf(w, "%s: ", reply.PersonaName)
	fmt.Fprintln(w, reply.Response)
}

func printTimetable(w io.Writer, tt *model.Timetable) {
	p := tt.Payload
	headerColor.Fprintf(w, "%s %s (night focus: %s)\n", p.DayName, p.Date, p.NightFocus)
	if p.Degraded() {
		warnColor.Fprintln(w, p.Error)
	} else {
		fmt.Fprintln(w, p.ScheduleText)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, tt.Message)
	if tt.Hint != "" {
		warnColor.Fprintln(w, tt.Hint)
	}
}

func printProfile(w io.Writer, view *model.ProfileView) {
	headerColor.Fprintf(w, "Profile of %s\n", view.UserID)
	fmt.Fprintf(w, "  persona:     %s\n", personaColor.Sprint(view.PersonaName))
	fmt.Fprintf(w, "  goals:       %s\n", strings.Join(view.Goals, ", "))
	fmt.Fprintf(w, "  preferences: %s\n", view.Preferences)
	if view.CreatedAt != nil {
		fmt.Fprintf(w, "  created at:  %s\n", view.CreatedAt.Local().Format("2006-01-02 15:04"))
	} else {
		mutedColor.Fprintln(w, "  (not set up yet)")
	}
}

func printChats(w io.Writer, records []*model.ChatRecord) {
	headerColor.Fprintf(w, "Chats (%d)\n", len(records))
	for _, r := range records {
		mutedColor.Fprintf(w, "[%s] ", r.Timestamp.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "you: %s\n", r.Message)
		fmt.Fprintf(w, "  %s %s\n", personaColor.Sprint(">"), r.Response)
	}
}

func printSchedules(w io.Writer, records []*model.ScheduleRecord) {
	headerColor.Fprintf(w, "Timetables (%d)\n", len(records))
	for _, r := range records {
		status := "ok"
		if r.Payload.Degraded() {
			status = warnColor.Sprint("failed")
		}
		fmt.Fprintf(w, "  %s %-9s %-18s %s\n", r.Date, r.Payload.DayName, r.Payload.NightFocus, status)
	}
}
