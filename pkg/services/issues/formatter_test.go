package issues

import (
	"fmt"
	"strings"
	"testing"

	"github.com/estafette/estafette-ci-issues/pkg/api"
	"github.com/stretchr/testify/assert"
)

func TestTokenFormatter(t *testing.T) {

	buildContext := BuildContext{
		Job: api.Job{Name: "estafette-ci-api"},
		Build: api.Build{
			Number:  15,
			URL:     "https://ci.estafette.io/builds/15",
			Outcome: api.BuildOutcomeFailure,
			Output:  []string{"line 1", "line 2", "line 3"},
		},
	}

	t.Run("ExpandsBareAndBracedTokens", func(t *testing.T) {

		formatter := NewTokenFormatter()

		// act
		formatted, err := formatter.Format("$JOB_NAME ${BUILD_DISPLAY_NAME} #$BUILD_NUMBER $BUILD_RESULT at ${BUILD_URL}", buildContext)

		assert.Nil(t, err)
		assert.Equal(t, "estafette-ci-api #15 #15 FAILURE at https://ci.estafette.io/builds/15", formatted)
	})

	t.Run("UsesDisplayNameWhenSet", func(t *testing.T) {

		formatter := NewTokenFormatter()
		bc := buildContext
		bc.Build.DisplayName = "1.2.15"

		// act
		formatted, err := formatter.Format(api.DefaultIssueTitle, bc)

		assert.Nil(t, err)
		assert.Equal(t, "estafette-ci-api 1.2.15 failed", formatted)
	})

	t.Run("LeavesUnknownTokensLiteral", func(t *testing.T) {

		formatter := NewTokenFormatter()

		// act
		formatted, err := formatter.Format("$JOB failed on ${NODE_NAME} costing $5", buildContext)

		assert.Nil(t, err)
		assert.Equal(t, "$JOB failed on ${NODE_NAME} costing $5", formatted)
	})

	t.Run("LeavesUnknownTokensWithArgumentsLiteral", func(t *testing.T) {

		formatter := NewTokenFormatter()

		// act
		formatted, err := formatter.Format("$JOB_NAME failed ${GIT_REVISION, length} ${ENV, var=\"HOME\"}", buildContext)

		assert.Nil(t, err)
		assert.Equal(t, "estafette-ci-api failed ${GIT_REVISION, length} ${ENV, var=\"HOME\"}", formatted)
	})

	t.Run("ReplacesDoubleDollarWithSingleDollar", func(t *testing.T) {

		formatter := NewTokenFormatter()

		// act
		formatted, err := formatter.Format("$$JOB_NAME is $JOB_NAME", buildContext)

		assert.Nil(t, err)
		assert.Equal(t, "$JOB_NAME is estafette-ci-api", formatted)
	})

	t.Run("ExpandsOutputWithLineLimit", func(t *testing.T) {

		formatter := NewTokenFormatter()

		// act
		formatted, err := formatter.Format("${OUTPUT, lines=2}", buildContext)

		assert.Nil(t, err)
		assert.Equal(t, "line 2\nline 3", formatted)
	})

	t.Run("ExpandsOutputWithDefaultOf50Lines", func(t *testing.T) {

		formatter := NewTokenFormatter()
		bc := buildContext
		bc.Build.Output = make([]string, 80)
		for i := range bc.Build.Output {
			bc.Build.Output[i] = fmt.Sprintf("line %v", i+1)
		}

		// act
		formatted, err := formatter.Format("$OUTPUT", bc)

		assert.Nil(t, err)
		lines := strings.Split(formatted, "\n")
		assert.Equal(t, 50, len(lines))
		assert.Equal(t, "line 31", lines[0])
		assert.Equal(t, "line 80", lines[49])
	})

	t.Run("RendersDefaultBody", func(t *testing.T) {

		formatter := NewTokenFormatter()

		// act
		formatted, err := formatter.Format(api.DefaultIssueBody, buildContext)

		assert.Nil(t, err)
		assert.Equal(t, "Build 'estafette-ci-api' is failing!\n\nLast 50 lines of build output:\n\n```\nline 1\nline 2\nline 3\n```\n\n[View full output](https://ci.estafette.io/builds/15)", formatted)
	})

	t.Run("ReturnsErrorForMalformedArgument", func(t *testing.T) {

		formatter := NewTokenFormatter()

		for _, template := range []string{"${OUTPUT, lines}", "${OUTPUT, lines=abc}", "${OUTPUT, lines=0}", "${OUTPUT, tail=3}"} {

			// act
			formatted, err := formatter.Format(template, buildContext)

			assert.NotNil(t, err, template)
			assert.Equal(t, template, formatted)
		}
	})
}
