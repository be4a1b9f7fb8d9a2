package generations

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"cvbien-backend/internal/credits"
	"cvbien-backend/internal/documents"
	"cvbien-backend/internal/llm"
	localstore "cvbien-backend/internal/shared/storage/object/local"
)

type fakeLedger struct {
	balance  int
	consumed int
	granted  int
}

func (f *fakeLedger) Balance(ctx context.Context, userID string) (int, error) {
	return f.balance, nil
}

func (f *fakeLedger) Consume(ctx context.Context, userID string, n int) (int, error) {
	if f.balance < n {
		return f.balance, credits.ErrInsufficientCredits
	}
	f.balance -= n
	f.consumed += n
	return f.balance, nil
}

func (f *fakeLedger) Grant(ctx context.Context, userID string, n int) (int, error) {
	f.balance += n
	f.granted += n
	return f.balance, nil
}

type fakeLLM struct {
	out   string
	err   error
	calls int
}

func (f *fakeLLM) Rewrite(ctx context.Context, input llm.RewriteInput) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

const taggedRewrite = `JANE DOE

jane@example.com | +33 6 12 34 56 78

Senior Backend Engineer

PROFESSIONAL SUMMARY
Engineer with <B>10 years</B> of experience building backend systems.

PROFESSIONAL EXPERIENCE
• Led migration of 40 services to Kubernetes
• Cut infrastructure cost by 30%`

type fixture struct {
	svc    *Service
	repo   *MemoryRepo
	ledger *fakeLedger
	llm    *fakeLLM
	userID string
	docID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := localstore.New(t.TempDir())
	ctx := context.Background()

	const userID = "guest:44444444-4444-4444-4444-444444444444"
	const storageKey = "seed/cv.txt"
	saver := store.(interface {
		SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	})
	if _, err := saver.SaveWithKey(ctx, storageKey, "text/plain", strings.NewReader("JANE DOE\nBackend engineer with python and docker experience")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	docRepo := documents.NewMemoryRepo()
	doc := documents.Document{
		ID:         "doc-1",
		UserID:     userID,
		FileName:   "cv.txt",
		MimeType:   "text/plain",
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}
	if err := docRepo.Create(ctx, doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}

	repo := NewMemoryRepo()
	ledger := &fakeLedger{balance: 3}
	client := &fakeLLM{out: taggedRewrite}
	svc := &Service{
		Repo:    repo,
		DocRepo: docRepo,
		Store:   store,
		LLM:     client,
		Credits: ledger,
	}
	return &fixture{svc: svc, repo: repo, ledger: ledger, llm: client, userID: userID, docID: "doc-1"}
}

func TestCreateGeneratesAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cv, err := f.svc.Create(ctx, f.userID, f.docID, "We are looking for a python backend engineer with docker skills for our team")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cv.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if cv.Language != llm.LanguageEnglish {
		t.Fatalf("language = %q", cv.Language)
	}
	if cv.OptimizedScore < 72 {
		t.Fatalf("optimized score below floor: %d", cv.OptimizedScore)
	}
	if cv.Downloaded {
		t.Fatalf("new generation must not be marked downloaded")
	}
	if f.ledger.consumed != 0 {
		t.Fatalf("generation must not consume credits, consumed=%d", f.ledger.consumed)
	}

	stored, err := f.repo.GetByID(ctx, f.userID, cv.ID)
	if err != nil {
		t.Fatalf("expected persisted generation: %v", err)
	}
	if stored.OptimizedText != taggedRewrite {
		t.Fatalf("optimized text not persisted verbatim")
	}
}

func TestCreateUsesCurrentDocumentWhenIDOmitted(t *testing.T) {
	f := newFixture(t)

	cv, err := f.svc.Create(context.Background(), f.userID, "", "python backend position")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cv.DocumentID != f.docID {
		t.Fatalf("expected current document, got %q", cv.DocumentID)
	}
}

func TestCreateRequiresCredit(t *testing.T) {
	f := newFixture(t)
	f.ledger.balance = 0

	_, err := f.svc.Create(context.Background(), f.userID, f.docID, "python job")
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if f.llm.calls != 0 {
		t.Fatalf("rewrite must not run without credits")
	}
}

func TestCreateRewriteFailurePersistsNothing(t *testing.T) {
	f := newFixture(t)
	f.llm.err = errors.New("upstream down")

	_, err := f.svc.Create(context.Background(), f.userID, f.docID, "python job")
	if !errors.Is(err, ErrRewriteFailed) {
		t.Fatalf("expected ErrRewriteFailed, got %v", err)
	}
	list, err := f.repo.ListByUser(context.Background(), f.userID, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("failed generation must not persist, got %d rows", len(list))
	}
}

func TestCreateUnknownDocument(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.userID, "missing-doc", "python job")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Create(context.Background(), f.userID, f.docID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank job description, got %v", err)
	}
}

func TestPreviewDoesNotConsumeCredits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cv, err := f.svc.Create(ctx, f.userID, f.docID, "python job description")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	preview, err := f.svc.GetPreview(ctx, f.userID, cv.ID)
	if err != nil {
		t.Fatalf("GetPreview: %v", err)
	}
	if len(preview.Lines) == 0 {
		t.Fatalf("expected display lines")
	}
	if f.ledger.consumed != 0 {
		t.Fatalf("preview must be free, consumed=%d", f.ledger.consumed)
	}
}

func TestDownloadConsumesExactlyOneCredit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cv, err := f.svc.Create(ctx, f.userID, f.docID, "python job description")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pdfBytes, got, err := f.svc.Download(ctx, f.userID, cv.ID)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("expected a PDF document")
	}
	if !got.Downloaded {
		t.Fatalf("expected downloaded flag set")
	}
	if f.ledger.consumed != 1 {
		t.Fatalf("first download must consume one credit, consumed=%d", f.ledger.consumed)
	}

	// Repeat download is free.
	if _, _, err := f.svc.Download(ctx, f.userID, cv.ID); err != nil {
		t.Fatalf("second Download: %v", err)
	}
	if f.ledger.consumed != 1 {
		t.Fatalf("repeat download must be free, consumed=%d", f.ledger.consumed)
	}
}

func TestDownloadWithoutCredits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cv, err := f.svc.Create(ctx, f.userID, f.docID, "python job description")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.ledger.balance = 0

	_, _, err = f.svc.Download(ctx, f.userID, cv.ID)
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
}

// raceRepo simulates losing the first-download race: the mark reports the
// flag was already flipped by someone else.
type raceRepo struct {
	*MemoryRepo
}

func (r *raceRepo) MarkDownloaded(ctx context.Context, userID, generationID string) (bool, error) {
	if _, err := r.MemoryRepo.MarkDownloaded(ctx, userID, generationID); err != nil {
		return false, err
	}
	return false, nil
}

func TestDownloadRefundsOnLostRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cv, err := f.svc.Create(ctx, f.userID, f.docID, "python job description")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.svc.Repo = &raceRepo{MemoryRepo: f.repo}
	before := f.ledger.balance
	if _, _, err := f.svc.Download(ctx, f.userID, cv.ID); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if f.ledger.granted != 1 {
		t.Fatalf("expected one refund grant, got %d", f.ledger.granted)
	}
	if f.ledger.balance != before {
		t.Fatalf("balance must be unchanged after refund: %d vs %d", f.ledger.balance, before)
	}
}
