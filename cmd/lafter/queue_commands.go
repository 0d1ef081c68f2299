package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lafter/internal/api"
	"lafter/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the candidate video queue",
	}

	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueImportCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueStatsCommand(ctx))

	return queueCmd
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	var channelID string

	cmd := &cobra.Command{
		Use:   "add VIDEO_ID TITLE",
		Short: "Add a candidate video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				video, created, err := store.Add(cmd.Context(), queue.NewVideo{
					VideoID:   args[0],
					ChannelID: channelID,
					Title:     args[1],
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if created {
					fmt.Fprintf(out, "Queued video %s as #%d\n", video.VideoID, video.ID)
				} else {
					fmt.Fprintf(out, "Video %s already queued as #%d (%s)\n", video.VideoID, video.ID, video.Status)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&channelID, "channel", "", "Channel identifier")
	return cmd
}

func newQueueImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import CSV",
		Short: "Queue videos from a CSV with video_id and title columns (channel_id optional)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			videos, err := readImportCSV(file)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return ctx.withStore(func(store *queue.Store) error {
				var added, skipped int
				for _, video := range videos {
					_, created, err := store.Add(cmd.Context(), video)
					if err != nil {
						return err
					}
					if created {
						added++
					} else {
						skipped++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d videos (%d already queued)\n", added, skipped)
				return nil
			})
		},
	}
}

func readImportCSV(r io.Reader) ([]queue.NewVideo, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	idColumn := slices.Index(header, "video_id")
	titleColumn := slices.Index(header, "title")
	channelColumn := slices.Index(header, "channel_id")
	if idColumn < 0 || titleColumn < 0 {
		return nil, errors.New("csv needs video_id and title columns")
	}

	field := func(record []string, column int) string {
		if column < 0 || column >= len(record) {
			return ""
		}
		return record[column]
	}
	var videos []queue.NewVideo
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		video := queue.NewVideo{
			VideoID:   strings.TrimSpace(field(record, idColumn)),
			ChannelID: strings.TrimSpace(field(record, channelColumn)),
			Title:     field(record, titleColumn),
		}
		if video.VideoID == "" || strings.TrimSpace(video.Title) == "" {
			continue
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var listStatuses []string
	var limit, offset int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := queue.ListFilter{Limit: limit, Offset: offset}
			for _, raw := range listStatuses {
				status, ok := queue.ParseStatus(raw)
				if !ok {
					return fmt.Errorf("unknown status %q", raw)
				}
				filter.Statuses = append(filter.Statuses, status)
			}
			return ctx.withStore(func(store *queue.Store) error {
				videos, err := store.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.FromVideos(videos))
				}
				if len(videos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]column{rightCol("ID"), leftCol("Video"), titleCol("Title"), leftCol("Status"), rightCol("Probability"), leftCol("By"), leftCol("Created")},
					buildQueueListRows(videos),
				))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&listStatuses, "status", "s", nil, "Filter by status (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to show (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit rows as JSON")
	return cmd
}

func buildQueueListRows(videos []*queue.Video) [][]string {
	rows := make([][]string, 0, len(videos))
	for _, video := range videos {
		probability := "-"
		if video.Classified() {
			probability = strconv.FormatFloat(video.Probability, 'f', 4, 64)
		}
		by := video.ClassifiedBy
		if by == "" {
			by = "-"
		}
		rows = append(rows, []string{
			strconv.FormatInt(video.ID, 10),
			video.VideoID,
			video.Title,
			string(video.Status),
			probability,
			by,
			video.CreatedAt.Local().Format(time.DateTime),
		})
	}
	return rows
}

func newQueueStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-status queue counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.FromStats(stats))
				}
				if stats.Total == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]column{leftCol("Status"), rightCol("Count")},
					buildQueueStatsRows(stats),
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit counts as JSON")
	return cmd
}

func buildQueueStatsRows(stats queue.Stats) [][]string {
	rows := make([][]string, 0, len(stats.ByStatus)+3)
	for _, status := range queue.AllStatuses() {
		rows = append(rows, []string{string(status), strconv.Itoa(stats.ByStatus[status])})
	}
	rows = append(rows,
		[]string{"llm checked", strconv.Itoa(stats.LLMChecked)},
		[]string{"llm failed", strconv.Itoa(stats.LLMFailed)},
		[]string{"total", strconv.Itoa(stats.Total)},
	)
	return rows
}
