package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gdedit/character"
	"gdedit/config"
	"gdedit/journal"
)

// make_save_dir builds a save directory with a few characters of different vintages
func make_save_dir(t *testing.T) string {
	dir := t.TempDir()

	hilda := character.New("Hilda")
	hilda.Seed = 0x12345678
	hilda.Header.Level = 40
	hilda.Bio.Level = 40
	hilda.Bio.Physique = 50 + 8*12
	hilda.Stats.Deaths = 7
	hilda.Skills.Skills = []character.Skill{
		{Name: "records/skills/playerclass01/warcry1.dbr", Level: 10, Enabled: 1},
		{Name: "records/skills/devotion/tier1_01a.dbr", Level: 1, Enabled: 1, DevotionLevel: 1},
	}

	old := character.New("Hildegard the Old")
	old.Seed = 0xcafef00d
	old.Version = 6
	old.Header.Version = 1
	old.Header.ExpansionStatus = character.Vanilla
	old.Header.Hardcore = 1
	old.Stats.Version = 7

	for _, c := range []*character.Character{hilda, old} {
		d := filepath.Join(dir, "main", "_"+c.Header.Name)
		require.NoError(t, os.MkdirAll(d, 0o755))
		require.NoError(t, c.Save(filepath.Join(d, character.FILENAME)))
	}
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	root := new_root_cmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{"--dir", dir, "--config", filepath.Join(dir, "missing.ini")}, args...))
	err := root.Execute()
	return out.String(), err
}

func path_of(dir string, name string) string {
	return filepath.Join(dir, "main", "_"+name, character.FILENAME)
}

func Test_List(t *testing.T) {
	dir := make_save_dir(t)
	out, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Hilda ")
	assert.Contains(t, out, "Hildegard the Old")
	assert.Contains(t, out, "ForgottenGods")
	assert.Contains(t, out, "Vanilla")
}

func Test_Show(t *testing.T) {
	dir := make_save_dir(t)
	out, err := run(t, dir, "show", "hilda")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "Hilda")
	assert.Contains(t, out, "Deaths:")

	out, err = run(t, dir, "show", "--json", "old")
	require.NoError(t, err)
	assert.Contains(t, out, `"Name": "Hildegard the Old"`)

	// "hil" could be either
	_, err = run(t, dir, "show", "hil")
	assert.ErrorContains(t, err, "ambiguous")
}

// The most basic test - does every file survive load-save?
func Test_VerifyAll(t *testing.T) {
	dir := make_save_dir(t)

	error_count := 0
	success_count := 0
	for _, name := range []string{"Hilda", "Hildegard the Old"} {
		out, err := run(t, dir, "verify", name)
		if err != nil {
			t.Logf("failed to verify %v: %v", name, err)
			error_count++
			continue
		}
		if !strings.Contains(out, "OK") {
			t.Logf("unexpected output for %v: %v", name, out)
			error_count++
			continue
		}
		success_count++
	}
	if error_count > 0 {
		t.Errorf("Errors! (%v errors, %v successes)", error_count, success_count)
	}
}

func Test_VerifyBroken(t *testing.T) {
	dir := make_save_dir(t)
	path := path_of(dir, "Hilda")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, 1, 2, 3), 0o644))

	// the header still reads, so it's found - but the whole file doesn't
	_, err = run(t, dir, "verify", "Hilda")
	assert.ErrorContains(t, err, "unexpected data after last record")

	out, err := run(t, dir, "dump", "Hilda")
	assert.Error(t, err)
	assert.Contains(t, out, "Stats")
}

func Test_Dump(t *testing.T) {
	dir := make_save_dir(t)
	out, err := run(t, dir, "dump", "hilda")
	require.NoError(t, err)
	assert.Contains(t, out, "seed 0x12345678")
	for _, name := range []string{"Info", "Bio", "Inventory", "Stash", "Shrines", "Stats", "Crucible"} {
		assert.Contains(t, out, name)
	}

	out, err = run(t, dir, "dump", "old")
	require.NoError(t, err)
	assert.NotContains(t, out, "Crucible")
}

func Test_RenameKeepsBackup(t *testing.T) {
	dir := make_save_dir(t)
	path := path_of(dir, "Hilda")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := run(t, dir, "rename", "hilda", "Brunhilda")
	require.NoError(t, err)
	assert.Contains(t, out, "Hilda is now Brunhilda")

	c, err := character.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Brunhilda", c.Header.Name)
	assert.Equal(t, uint32(0x12345678), c.Seed)

	backups, err := filepath.Glob(path + ".*.bak")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	kept, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, before, kept)
}

func fail_writes(t *testing.T, f func(path string) error) {
	orig := write_file
	t.Cleanup(func() { write_file = orig })
	write_file = func(path string, _ []byte, _ os.FileMode) error {
		return f(path)
	}
}

func Test_FailedSaveRestoresBackup(t *testing.T) {
	dir := make_save_dir(t)
	path := path_of(dir, "Hilda")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	fail_writes(t, func(string) error { return errors.New("disk full") })
	_, err = run(t, dir, "rename", "hilda", "Brunhilda")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "old save restored")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	backups, err := filepath.Glob(path + ".*.bak")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func Test_FailedRestoreSaysWhereTheBackupIs(t *testing.T) {
	dir := make_save_dir(t)
	path := path_of(dir, "Hilda")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// leave a directory where the save was, so the backup can't be renamed back
	fail_writes(t, func(path string) error {
		if err := os.Mkdir(path, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(path, "junk"), nil, 0o644); err != nil {
			return err
		}
		return errors.New("disk full")
	})
	_, err = run(t, dir, "rename", "hilda", "Brunhilda")
	require.Error(t, err)

	backups, err2 := filepath.Glob(path + ".*.bak")
	require.NoError(t, err2)
	require.Len(t, backups, 1)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "restoring it also failed")
	assert.Contains(t, err.Error(), backups[0])

	kept, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, before, kept)
}

func Test_RenameWithoutBackup(t *testing.T) {
	dir := make_save_dir(t)
	ini := filepath.Join(dir, "gdedit.ini")
	require.NoError(t, config.Config{Dir: dir, Backup: false, Settle: time.Second, LogLevel: "warn"}.Save(ini))

	root := new_root_cmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", ini, "rename", "Hilda", "Solo"})
	require.NoError(t, root.Execute())

	backups, err := filepath.Glob(path_of(dir, "Hilda") + ".*.bak")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func Test_Clone(t *testing.T) {
	dir := make_save_dir(t)
	_, err := run(t, dir, "clone", "Hilda", "Twin")
	require.NoError(t, err)

	twin, err := character.Load(path_of(dir, "Twin"))
	require.NoError(t, err)
	orig, err := character.Load(path_of(dir, "Hilda"))
	require.NoError(t, err)
	diffs := character.Diff(orig, twin)
	require.Len(t, diffs, 1)
	assert.Contains(t, diffs[0], "Header.Name")

	_, err = run(t, dir, "clone", "Hilda", "Twin")
	assert.ErrorContains(t, err, "already exists")
}

func Test_Reset(t *testing.T) {
	dir := make_save_dir(t)
	out, err := run(t, dir, "reset", "hilda", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Stats.Deaths")

	c, err := character.Load(path_of(dir, "Hilda"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), c.Stats.Deaths)
	assert.Equal(t, float32(50), c.Bio.Physique)
	assert.Equal(t, uint32(12), c.Bio.AttributePoints)
	assert.Equal(t, uint32(10), c.Bio.SkillPoints)
	assert.Equal(t, uint32(1), c.Bio.DevotionPoints)
	assert.Nil(t, c.Skills.Skills)

	_, err = run(t, dir, "reset", "hilda", "everything")
	assert.ErrorContains(t, err, "can't reset")
}

func Test_Diff(t *testing.T) {
	dir := make_save_dir(t)
	out, err := run(t, dir, "diff", "Hilda", "Hilda")
	require.NoError(t, err)
	assert.Equal(t, "identical\n", out)

	out, err = run(t, dir, "diff", "Hilda", "old")
	require.NoError(t, err)
	assert.Contains(t, out, "Header.Name")
	assert.Contains(t, out, "Version")
}

func Test_History(t *testing.T) {
	dir := make_save_dir(t)
	j, err := journal.Open(filepath.Join(dir, ".gdedit-journal"))
	require.NoError(t, err)
	for level := uint32(1); level <= 3; level++ {
		_, err := j.Record(journal.Snapshot{Name: "Hilda", Level: level, Time: time.Now()})
		require.NoError(t, err)
	}
	require.NoError(t, j.Close())

	out, err := run(t, dir, "history", "hild")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
}

func Test_Watch(t *testing.T) {
	dir := make_save_dir(t)
	out := &bytes.Buffer{}
	cfg, err := config.Load(filepath.Join(dir, "missing.ini"), dir)
	require.NoError(t, err)
	cfg.Settle = 10 * time.Millisecond
	a := &app{cfg: cfg, log: zaptest.NewLogger(t).Sugar(), out: out}

	j, err := journal.Open(cfg.Journal)
	require.NoError(t, err)
	defer j.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- a.watch(ctx, j) }()

	time.Sleep(200 * time.Millisecond)
	c, err := character.Load(path_of(dir, "Hilda"))
	require.NoError(t, err)
	require.NoError(t, c.ResetDeaths().Save(path_of(dir, "Hilda")))

	require.Eventually(t, func() bool {
		history, err := j.History("Hilda")
		return err == nil && len(history) >= 1
	}, 10*time.Second, 20*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Contains(t, out.String(), "Watching")
	assert.Contains(t, out.String(), "Hilda")
}
