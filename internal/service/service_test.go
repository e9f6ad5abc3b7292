package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	users     UserService
	exercises ExerciseService
	store     *memory.Store
}

func newFixture(strict bool) *fixture {
	store := memory.NewStore()
	return &fixture{
		store: store,
		users: NewUserService(store.Users()),
		exercises: NewExerciseService(store.Users(), store.Exercises(), ExerciseOptions{
			Strict:   strict,
			Now:      func() time.Time { return fixedNow },
			Location: time.UTC,
		}),
	}
}

func (f *fixture) mustUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), name)
	require.NoError(t, err)
	return u
}

func (f *fixture) mustLog(t *testing.T, userID, description, duration, date string) *domain.Exercise {
	t.Helper()
	_, ex, err := f.exercises.LogExercise(context.Background(), userID, LogExerciseInput{Description: description, Duration: duration, Date: date})
	require.NoError(t, err)
	return ex
}

func descriptions(log *domain.Log) []string {
	out := make([]string, len(log.Log))
	for i, e := range log.Log {
		out[i] = e.Description
	}
	return out
}

func TestCreateUser_SameUsernameDistinctIDs(t *testing.T) {
	f := newFixture(false)
	before := testutil.ToFloat64(metrics.UsersCreated)

	a := f.mustUser(t, "sam")
	b := f.mustUser(t, "sam")
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, a.Username, b.Username)
	require.Equal(t, before+2, testutil.ToFloat64(metrics.UsersCreated))
}

func TestListUsers_CreationOrder(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	empty, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	var ids []string
	for _, name := range []string{"a", "b", "c", ""} {
		ids = append(ids, f.mustUser(t, name).ID)
	}
	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)
	for i := range users {
		require.Equal(t, ids[i], users[i].ID)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	f := newFixture(false)
	_, err := f.users.GetUser(context.Background(), "nope")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogExercise_UnknownUserDoesNotWrite(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	_, _, err := f.exercises.LogExercise(ctx, "ghost", LogExerciseInput{Description: "run", Duration: "10"})
	require.ErrorIs(t, err, ErrUserNotFound)

	n, err := f.exercises.CountExercises(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLogExercise_Coercion(t *testing.T) {
	f := newFixture(false)
	u := f.mustUser(t, "kim")

	ex := f.mustLog(t, u.ID, "run", "30", "")
	require.Equal(t, 30, *ex.Duration)
	require.Equal(t, "Mon Jan 01 2024", ex.Date, "missing date defaults to now")

	ex = f.mustLog(t, u.ID, "swim", "45 minutes", "2023-01-15")
	require.Equal(t, 45, *ex.Duration)
	require.Equal(t, "Sun Jan 15 2023", ex.Date)

	ex = f.mustLog(t, u.ID, "yoga", "abc", "someday")
	require.Nil(t, ex.Duration, "non-numeric duration is kept as the marker")
	require.Equal(t, domain.InvalidDate, ex.Date)

	ex = f.mustLog(t, u.ID, "walk", "", "   ")
	require.Nil(t, ex.Duration)
	require.Equal(t, "Mon Jan 01 2024", ex.Date)

	n, _ := f.exercises.CountExercises(context.Background())
	require.EqualValues(t, 4, n)
}

func TestLogExercise_StrictRejectsWithoutWriting(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	u := f.mustUser(t, "kim")

	for _, in := range []LogExerciseInput{
		{Description: "run", Duration: "abc"},
		{Description: "run", Duration: "30 min"},
		{Description: "run", Duration: ""},
		{Description: "run", Duration: "30", Date: "someday"},
	} {
		_, _, err := f.exercises.LogExercise(ctx, u.ID, in)
		require.ErrorIs(t, err, ErrValidationFailed, "%+v", in)
	}
	n, _ := f.exercises.CountExercises(ctx)
	require.Zero(t, n)

	ex := f.mustLog(t, u.ID, "run", " 30 ", "2023-01-15")
	require.Equal(t, 30, *ex.Duration)
}

func TestGetLog_UnknownUser(t *testing.T) {
	f := newFixture(false)
	_, err := f.exercises.GetLog(context.Background(), "ghost", LogQuery{})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetLog_OnlyOwnExercisesInInsertionOrder(t *testing.T) {
	f := newFixture(false)
	a := f.mustUser(t, "a")
	b := f.mustUser(t, "b")
	f.mustLog(t, a.ID, "late", "1", "2023-06-01")
	f.mustLog(t, b.ID, "other", "1", "2023-03-01")
	f.mustLog(t, a.ID, "early", "1", "2023-01-01")

	log, err := f.exercises.GetLog(context.Background(), a.ID, LogQuery{})
	require.NoError(t, err)
	require.Equal(t, "a", log.Username)
	require.Equal(t, a.ID, log.UserID)
	require.Equal(t, 2, log.Count)
	require.Equal(t, []string{"late", "early"}, descriptions(log), "not re-sorted by date")
}

func TestGetLog_FromToInclusive(t *testing.T) {
	f := newFixture(false)
	u := f.mustUser(t, "r")
	f.mustLog(t, u.ID, "before", "1", "2022-12-31")
	f.mustLog(t, u.ID, "first-day", "1", "2023-01-01")
	f.mustLog(t, u.ID, "mid", "1", "2023-06-15")
	f.mustLog(t, u.ID, "last-day", "1", "2023-12-31")
	f.mustLog(t, u.ID, "after", "1", "2024-01-01")
	f.mustLog(t, u.ID, "broken", "1", "someday")

	ctx := context.Background()
	log, err := f.exercises.GetLog(ctx, u.ID, LogQuery{From: "2023-01-01", To: "2023-12-31"})
	require.NoError(t, err)
	require.Equal(t, []string{"first-day", "mid", "last-day"}, descriptions(log))
	require.Equal(t, 3, log.Count)

	log, err = f.exercises.GetLog(ctx, u.ID, LogQuery{From: "2023-06-15"})
	require.NoError(t, err)
	require.Equal(t, []string{"mid", "last-day", "after"}, descriptions(log))

	log, err = f.exercises.GetLog(ctx, u.ID, LogQuery{To: "2023-01-01"})
	require.NoError(t, err)
	require.Equal(t, []string{"before", "first-day"}, descriptions(log))

	log, err = f.exercises.GetLog(ctx, u.ID, LogQuery{})
	require.NoError(t, err)
	require.Equal(t, 6, log.Count, "no bound keeps invalid dates")
}

func TestGetLog_StoredDateWorksAsBound(t *testing.T) {
	f := newFixture(false)
	u := f.mustUser(t, "r")
	ex := f.mustLog(t, u.ID, "only", "5", "2023-03-05")

	log, err := f.exercises.GetLog(context.Background(), u.ID, LogQuery{From: ex.Date, To: ex.Date})
	require.NoError(t, err)
	require.Equal(t, []string{"only"}, descriptions(log))
}

func TestGetLog_Limit(t *testing.T) {
	f := newFixture(false)
	u := f.mustUser(t, "l")
	for _, d := range []string{"e1", "e2", "e3", "e4", "e5"} {
		f.mustLog(t, u.ID, d, "10", "2023-02-01")
	}
	ctx := context.Background()

	cases := map[string][]string{
		"2":   {"e1", "e2"},
		"10":  {"e1", "e2", "e3", "e4", "e5"},
		"0":   {},
		"-2":  {"e1", "e2", "e3"},
		"-9":  {},
		"abc": {},
		"3x":  {"e1", "e2", "e3"},
	}
	for limit, want := range cases {
		log, err := f.exercises.GetLog(ctx, u.ID, LogQuery{Limit: limit})
		require.NoError(t, err, limit)
		require.Equal(t, want, descriptions(log), "limit %q", limit)
		require.Equal(t, len(want), log.Count, "limit %q", limit)
	}
}

func TestGetLog_LenientBadBoundIsEmpty(t *testing.T) {
	f := newFixture(false)
	u := f.mustUser(t, "x")
	f.mustLog(t, u.ID, "run", "1", "2023-01-01")

	log, err := f.exercises.GetLog(context.Background(), u.ID, LogQuery{From: "garbage"})
	require.NoError(t, err)
	require.Zero(t, log.Count)
	require.NotNil(t, log.Log)
}

func TestGetLog_StrictRejectsBadQuery(t *testing.T) {
	f := newFixture(true)
	u := f.mustUser(t, "x")
	ctx := context.Background()

	for _, q := range []LogQuery{{From: "garbage"}, {To: "garbage"}, {Limit: "abc"}, {Limit: "-1"}, {Limit: "2x"}} {
		_, err := f.exercises.GetLog(ctx, u.ID, q)
		require.ErrorIs(t, err, ErrValidationFailed, "%+v", q)
	}
	_, err := f.exercises.GetLog(ctx, u.ID, LogQuery{From: "2023-01-01", Limit: "3"})
	require.NoError(t, err)
}
