// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/ddl"
	"github.com/cockroachdb/groupsql/pkg/sql/insertgen"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgnotice"
	"github.com/cockroachdb/groupsql/pkg/sql/plan"
	"github.com/cockroachdb/groupsql/pkg/sql/schemafile"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/builtins"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/util/log"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile --schema-file <file>",
	Short: "compile a schema file and describe the resulting catalog",
	Long: `
Create the tables of a schema file in order against an empty catalog and
print every table, sequence and group.
`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

var planCmd = &cobra.Command{
	Use:   "plan --schema-file <file> [--table <name>]",
	Short: "print the insert plans of the tables of a schema file",
	Long: `
Create the tables of a schema file and print the plan of an insert into
the given table, or into every table.
`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

// noticePrinter prints notices to stderr.
type noticePrinter struct {
	w io.Writer
}

func (p noticePrinter) BufferClientNotice(_ context.Context, n pgnotice.Notice) {
	fmt.Fprintf(p.w, "NOTICE: %s\n", n.Error())
}

// loadSchema creates the tables of the schema file against a new
// catalog.
func loadSchema(cmd *cobra.Command) (*catalog.Manager, error) {
	if cliCtx.schemaFile == "" {
		return nil, errors.Mark(errors.New("--schema-file is required"), errFlag)
	}
	data, err := os.ReadFile(cliCtx.schemaFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading schema file")
	}
	stmts, err := schemafile.Parse(data)
	if err != nil {
		return nil, err
	}
	m := catalog.NewManager()
	opts := ddl.Options{
		DefaultSchema: cliCtx.defaultSchema,
		Notices:       noticePrinter{w: cmd.ErrOrStderr()},
	}
	for _, n := range stmts {
		if err := ddl.CreateTable(cmd.Context(), m, opts, n); err != nil {
			return nil, err
		}
	}
	log.Infof(cmd.Context(), "compiled %d tables", len(stmts))
	return m, nil
}

func runCompile(cmd *cobra.Command, _ []string) error {
	m, err := loadSchema(cmd)
	if err != nil {
		return err
	}
	printCatalog(cmd.OutOrStdout(), m.Catalog())
	return nil
}

func runPlan(cmd *cobra.Command, _ []string) error {
	m, err := loadSchema(cmd)
	if err != nil {
		return err
	}
	c := m.Catalog()
	tables := c.Tables()
	if cliCtx.table != "" {
		tn, err := schemafile.ParseTableName(cliCtx.table)
		if err != nil {
			return err
		}
		tn = tn.Qualify(cliCtx.defaultSchema)
		t, ok := c.Table(tn)
		if !ok {
			return sqlerrors.NewUndefinedRelationError(tn)
		}
		tables = []*catalog.Table{t}
	}
	g := insertgen.NewGenerator(builtins.Default(), insertgen.Options{
		LenientDefaults: cliCtx.lenientDefaults,
	})
	w := cmd.OutOrStdout()
	for i, t := range tables {
		p, err := g.CompileInsert(cmd.Context(), t)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "insert into %s\n", t.Name)
		fmt.Fprint(w, plan.Explain(p))
	}
	return nil
}
