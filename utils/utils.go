package utils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"gdedit/character"
)

// Smash smashes "funny characters" (which includes anything that's remotely tricky to type into a command line) in a string into the '_' character
func Smash(in string) string {
	out := strings.Builder{}
	for _, c := range in {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			out.WriteRune(c)
		} else {
			out.WriteRune('_')
		}
	}
	return out.String()
}

// string matching functions, in strictly increasing order of desperation
var fuzzy = []func(input string, candidate string) bool{
	func(i string, c string) bool { return i == c },
	func(i string, c string) bool { return strings.EqualFold(i, c) },
	func(i string, c string) bool { return Smash(strings.ToUpper(i)) == Smash(strings.ToUpper(c)) },
	func(i string, c string) bool {
		return strings.HasPrefix(Smash(strings.ToUpper(c)), Smash(strings.ToUpper(i)))
	},
	func(i string, c string) bool {
		return strings.Contains(Smash(strings.ToUpper(c)), Smash(strings.ToUpper(i)))
	},
}

// FuzzyLookup looks up "backwards" in a map: finds the key whose value best matches to.
//
// trans: map to be looked up in
// to: what the user typed
// what: type of thing to be looked up, for the error message
//
// Returns: lookup result key, and the value that matched (not necessarily equal to "to" due to fuzzy matching)
func FuzzyLookup[K comparable](trans map[K]string, to string, what string) (K, string, error) {
	var K0 K

	for _, match := range fuzzy {
		matches := []K{}
		names := []string{}
		for k, v := range trans {
			if match(to, v) {
				matches = append(matches, k)
				names = append(names, v)
			}
		}
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 1 {
			slices.Sort(names)
			return K0, "", errors.Errorf("ambiguous %v: %v could be any of {%v}", what, to, strings.Join(names, ", "))
		}

		return matches[0], names[0], nil
	}

	return K0, "", errors.Errorf("%v could not be matched to any %v", to, what)
}

// CharacterFile is a character found on disk.
type CharacterFile struct {
	Path   string
	Header character.Header
}

// FindCharacters lists the characters in a save directory.
// Grim Dawn keeps each character in a directory called _<name> holding player.gdc; local saves sit
// under a "main" subdirectory, so that is looked in too.  Unreadable files are skipped, not fatal.
func FindCharacters(dir string) ([]CharacterFile, error) {
	roots := []string{dir}
	if fi, err := os.Stat(filepath.Join(dir, "main")); err == nil && fi.IsDir() {
		roots = append(roots, filepath.Join(dir, "main"))
	}

	found := []CharacterFile{}
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, errors.Wrapf(err, "listing %s", root)
		}
		for _, e := range entries {
			if !e.IsDir() || !strings.HasPrefix(e.Name(), "_") {
				continue
			}
			path := filepath.Join(root, e.Name(), character.FILENAME)
			h, err := character.PeekHeader(path)
			if err != nil {
				continue
			}
			found = append(found, CharacterFile{Path: path, Header: *h})
		}
	}
	return found, nil
}

// FindCharacter finds one character by (fuzzy) name.
func FindCharacter(dir string, name string) (CharacterFile, error) {
	chars, err := FindCharacters(dir)
	if err != nil {
		return CharacterFile{}, err
	}
	byIndex := map[int]string{}
	for i, c := range chars {
		byIndex[i] = c.Header.Name
	}
	i, _, err := FuzzyLookup(byIndex, name, "character in "+dir)
	if err != nil {
		return CharacterFile{}, err
	}
	return chars[i], nil
}

// IsCharacterFile reports whether path looks like a character's save file.
func IsCharacterFile(path string) bool {
	return filepath.Base(path) == character.FILENAME && strings.HasPrefix(filepath.Base(filepath.Dir(path)), "_")
}
