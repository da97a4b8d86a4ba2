package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"upvotes_analyzer/internal/analyzer"
	"upvotes_analyzer/internal/models"
	analyzersvc "upvotes_analyzer/internal/modules/analyzer/service"
)

const (
	// сколько окон максимум выводим в чат
	replyLimit = 50
	// сколько значений окна показываем в строке breakdown
	windowValuesLimit = 8
	// лимит Telegram 4096 символов на сообщение, берём с запасом
	maxReplyRunes  = 4000
	replyTailRunes = 64
)

type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Run, error)
	Breakdown(ctx context.Context, req models.AnalyzeRequest) ([]models.WindowMetric, error)
	Run(ctx context.Context, id string) (*models.Run, error)
}

// Commands — обработчики команд бота.
type Commands struct {
	svc Analyzer
}

func NewCommands(svc Analyzer) *Commands {
	return &Commands{svc: svc}
}

const helpText = `Команды:
/analyze K v1 v2 ... — метрика по каждому окну длины K
/breakdown K v1 v2 ... — неубывающие / невозрастающие по окнам
/run ID — результат прошлого прогона`

func (c *Commands) Help(_ context.Context, _ string) string { return helpText }

// Analyze: /analyze 3 1 2 3 1 1
func (c *Commands) Analyze(ctx context.Context, args string) string {
	req, err := ParseArgs(args)
	if err != nil {
		return "❗️ " + err.Error() + "\n\n" + helpText
	}
	run, err := c.svc.Analyze(ctx, req)
	if err != nil {
		return "❗️ " + describe(err)
	}
	return fmt.Sprintf("✅ %s\nN=%d K=%d\n%s", run.ID, run.N, run.K, preview(run.Metrics))
}

func (c *Commands) Breakdown(ctx context.Context, args string) string {
	req, err := ParseArgs(args)
	if err != nil {
		return "❗️ " + err.Error() + "\n\n" + helpText
	}
	windows, err := c.svc.Breakdown(ctx, req)
	if err != nil {
		return "❗️ " + describe(err)
	}

	var (
		b     strings.Builder
		runes int
	)
	for i, w := range windows {
		line := fmt.Sprintf("#%d %s: ↗ %d ↘ %d Δ %d\n",
			w.Index, analyzersvc.Preview(req.Values[w.Start:w.End], windowValuesLimit),
			w.NonDecreasing, w.NonIncreasing, w.Delta)
		n := utf8.RuneCountInString(line)
		if i == replyLimit || runes+n > maxReplyRunes-replyTailRunes {
			fmt.Fprintf(&b, "… ещё %d окон\n", len(windows)-i)
			break
		}
		b.WriteString(line)
		runes += n
	}
	return b.String()
}

func (c *Commands) Run(ctx context.Context, args string) string {
	id := strings.TrimSpace(args)
	if id == "" {
		return "❗️ нужен ID прогона: /run ID"
	}
	run, err := c.svc.Run(ctx, id)
	if err != nil {
		return "❗️ " + describe(err)
	}
	return fmt.Sprintf("📦 %s (%s)\nN=%d K=%d mode=%s\n%s",
		run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.N, run.K, run.Mode, preview(run.Metrics))
}

// ParseArgs: "K v1 v2 ..." (пробелы или запятые). N = число значений.
func ParseArgs(args string) (models.AnalyzeRequest, error) {
	fields := strings.FieldsFunc(args, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	})
	if len(fields) < 2 {
		return models.AnalyzeRequest{}, errors.New("нужно: K и хотя бы одно значение")
	}

	k, err := strconv.Atoi(fields[0])
	if err != nil {
		return models.AnalyzeRequest{}, errors.Errorf("K должно быть целым: %q", fields[0])
	}
	values := make([]int64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return models.AnalyzeRequest{}, errors.Errorf("не число: %q", f)
		}
		values = append(values, v)
	}
	return models.AnalyzeRequest{N: len(values), K: k, Values: values}, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		return "некорректный ввод: " + err.Error()
	case errors.Is(err, models.ErrRunNotFound):
		return "прогон не найден"
	default:
		return "внутренняя ошибка: " + err.Error()
	}
}

func preview(metrics []int64) string {
	if len(metrics) <= replyLimit {
		return fmt.Sprint(metrics)
	}
	return fmt.Sprintf("%v … (+%d)", metrics[:replyLimit], len(metrics)-replyLimit)
}
