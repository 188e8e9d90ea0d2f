package volt

// BuildGrammar constructs the full Volt grammar registry and freezes it.
// Each call returns a fresh, independently-owned registry; callers share
// one by reference across every parser of a build. Rules are grouped
// top-level items, declarations, types, statements, then the expression
// precedence ladder.
//
// panics via GrammarRegistry.Define are unreachable here: every Define call
// below runs before the registry is frozen.
func BuildGrammar() (*GrammarRegistry, error) {
	r := NewGrammarRegistry()

	defineItems(r)
	defineTypes(r)
	defineDeclarations(r)
	defineStatements(r)
	defineExpressions(r)

	return r, r.Freeze()
}

func defineItems(r *GrammarRegistry) {
	r.Define("unit",
		Alt(Rule("items")))

	r.Define("items",
		Alt(Rule("item"), Rule("items_rest")),
		Alt())

	r.Define("items_rest",
		Alt(Rule("item"), Rule("items_rest")),
		Alt())

	r.Define("item",
		Alt(OptRule("attributes"), Rule("extern_decl")),
		Alt(OptRule("attributes"), Rule("export_decl")),
		Alt(OptRule("attributes"), Rule("func_def")),
		Alt(OptRule("attributes"), Rule("use_decl")),
		Alt(OptRule("attributes"), Rule("namespace_decl")),
		Alt(OptRule("attributes"), Rule("struct_decl")),
		Alt(OptRule("attributes"), Rule("enum_decl")),
		Alt(OptRule("attributes"), Rule("error_decl")),
		Alt(OptRule("attributes"), Rule("trait_decl")),
		Alt(OptRule("attributes"), Rule("attach_decl")))

	r.Define("attributes",
		Alt(Tok(TokenAt), Tok(TokenIdentifier), Tok(TokenLParen), Rule("array_literal"), Tok(TokenRParen)))

	r.Define("use_decl",
		// Braced string-list import: try first, it's the more specific shape.
		Alt(Tok(TokenUseKw), Tok(TokenLBrace), Rule("string_list"), Tok(TokenRBrace),
			Tok(TokenAsKw), Tok(TokenIdentifier), Tok(TokenSemicolon)),
		Alt(Tok(TokenUseKw), Rule("use_path"), Tok(TokenSemicolon)))

	r.Define("use_path",
		Alt(Tok(TokenIdentifier), Rule("use_path_rest")))

	r.Define("use_path_rest",
		Alt(Tok(TokenColonColon), Tok(TokenIdentifier), Rule("use_path_rest")),
		Alt())

	r.Define("string_list",
		Alt(Tok(TokenString), Rule("string_list_rest")))

	r.Define("string_list_rest",
		Alt(Tok(TokenComma), Tok(TokenString), Rule("string_list_rest")),
		Alt())

	r.Define("namespace_decl",
		Alt(Tok(TokenNamespaceKw), Rule("namespace_path"), Tok(TokenLBrace), Rule("items"), Tok(TokenRBrace)))

	r.Define("namespace_path",
		Alt(Tok(TokenIdentifier), Rule("namespace_path_rest")))

	r.Define("namespace_path_rest",
		Alt(Tok(TokenColonColon), Tok(TokenIdentifier), Rule("namespace_path_rest")),
		Alt())
}

func defineDeclarations(r *GrammarRegistry) {
	r.Define("func_def",
		Alt(OptRule("generics"), OptRule("visibility"), OptTok(TokenComptimeKw), OptTok(TokenAsyncKw),
			OptTok(TokenAttachKw), Tok(TokenFnKw), Tok(TokenIdentifier), Tok(TokenLParen),
			Rule("params"), Tok(TokenRParen), OptRule("error_type"),
			Tok(TokenArrow), Rule("type"), Rule("block")))

	r.Define("visibility",
		Alt(Tok(TokenPublicKw)),
		Alt(Tok(TokenInternalKw)))

	r.Define("error_type",
		Alt(Rule("type"), Tok(TokenBang)))

	r.Define("extern_decl",
		Alt(OptRule("generics"), Tok(TokenExternKw), OptTok(TokenString), Tok(TokenFnKw),
			Tok(TokenIdentifier), Tok(TokenLParen), Rule("params"), Tok(TokenRParen),
			OptRule("error_type"), Tok(TokenArrow), Rule("type"), Tok(TokenSemicolon)))

	r.Define("export_decl",
		Alt(OptRule("generics"), Tok(TokenExportKw), OptTok(TokenString), Tok(TokenFnKw),
			Tok(TokenIdentifier), Tok(TokenLParen), Rule("params"), Tok(TokenRParen),
			OptRule("error_type"), Tok(TokenArrow), Rule("type"), Rule("block")))

	r.Define("generics",
		Alt(Tok(TokenLAngle), Rule("generic_params"), Tok(TokenRAngle)))

	r.Define("generic_args",
		Alt(Tok(TokenLAngle), Rule("type_list"), Tok(TokenRAngle)))

	r.Define("generic_params",
		Alt(Rule("generic_param"), Rule("generic_params_rest")))

	r.Define("generic_params_rest",
		Alt(Tok(TokenComma), Rule("generic_param"), Rule("generic_params_rest")),
		Alt())

	r.Define("generic_param",
		Alt(Tok(TokenIdentifier), Tok(TokenColon), Rule("type_constraint"), Tok(TokenEq), Rule("expression")),
		Alt(Tok(TokenIdentifier), Tok(TokenColon), Rule("type_constraint")))

	r.Define("type_constraint",
		Alt(Rule("type")),
		Alt(Rule("comptime_fn_call")),
		Alt(Rule("type"), Tok(TokenLBracket), Tok(TokenRBracket)))

	r.Define("comptime_fn_call",
		Alt(Tok(TokenIdentifier), Tok(TokenLParen), Rule("args"), Tok(TokenRParen)))

	r.Define("params",
		Alt(Rule("param"), Rule("params_rest")),
		// Variadic shorthand: "args: type[]".
		Alt(Tok(TokenIdentifier), Tok(TokenColon), Rule("type"), Tok(TokenLBracket), Tok(TokenRBracket)),
		Alt())

	r.Define("params_rest",
		Alt(Tok(TokenComma), Rule("param"), Rule("params_rest")),
		Alt())

	r.Define("param",
		// 'this', with and without a default value.
		Alt(OptTok(TokenStaticKw), Tok(TokenThisKw), Tok(TokenColon), Rule("type"), Tok(TokenEq), Rule("expression")),
		Alt(OptTok(TokenStaticKw), Tok(TokenThisKw), Tok(TokenColon), Rule("type")),
		// Regular identifier, with and without a default value.
		Alt(OptTok(TokenStaticKw), Tok(TokenIdentifier), Tok(TokenColon), Rule("type"), Tok(TokenEq), Rule("expression")),
		Alt(OptTok(TokenStaticKw), Tok(TokenIdentifier), Tok(TokenColon), Rule("type")),
		// Unnamed 'this' (trait method signatures without a bound receiver name).
		Alt(Tok(TokenThisKw)),
		// Unnamed parameter: bare type (extern/generic references).
		Alt(Rule("type")))

	r.Define("struct_decl",
		Alt(OptRule("generics"), OptRule("visibility"), OptTok(TokenComptimeKw), Tok(TokenStructKw),
			Tok(TokenIdentifier), Tok(TokenLBrace), Rule("fields"), Tok(TokenRBrace)),
		Alt(OptRule("generics"), OptRule("visibility"), OptTok(TokenComptimeKw), Tok(TokenStructKw),
			Tok(TokenIdentifier), Tok(TokenSemicolon)))

	r.Define("fields",
		Alt(Rule("field"), Rule("fields_rest")),
		Alt())

	r.Define("fields_rest",
		Alt(Rule("field"), Rule("fields_rest")),
		Alt())

	r.Define("field",
		Alt(Tok(TokenIdentifier), Tok(TokenColon), Rule("type"), OptTok(TokenEq), OptRule("expression"), Tok(TokenSemicolon)))

	r.Define("enum_decl",
		Alt(OptRule("generics"), OptRule("visibility"), OptRule("generics"), Tok(TokenEnumKw),
			Tok(TokenIdentifier), Tok(TokenLBrace), Rule("enum_variants"), Tok(TokenRBrace)))

	r.Define("enum_variants",
		Alt(Rule("enum_variant"), Rule("enum_variants_rest")))

	r.Define("enum_variants_rest",
		Alt(Tok(TokenComma), Rule("enum_variant"), Rule("enum_variants_rest")),
		Alt(Tok(TokenComma)),
		Alt())

	r.Define("enum_variant",
		Alt(Tok(TokenIdentifier), OptTok(TokenColon), OptRule("type")))

	r.Define("error_decl",
		Alt(OptRule("generics"), OptRule("visibility"), OptRule("generics"), Tok(TokenErrorKw),
			Tok(TokenIdentifier), Tok(TokenLBrace), Rule("enum_variants"), Tok(TokenRBrace)))

	r.Define("trait_decl",
		Alt(OptRule("generics"), OptRule("visibility"), Tok(TokenTraitKw), Tok(TokenIdentifier),
			Tok(TokenLBrace), Rule("trait_items"), Tok(TokenRBrace)))

	r.Define("trait_items",
		Alt(Rule("trait_item"), Rule("trait_items_rest")),
		Alt())

	r.Define("trait_items_rest",
		Alt(Rule("trait_item"), Rule("trait_items_rest")),
		Alt())

	r.Define("trait_item",
		Alt(OptRule("generics"), Tok(TokenFnKw), OptRule("generics"), Tok(TokenIdentifier),
			Tok(TokenLParen), Rule("params"), Tok(TokenRParen), Tok(TokenArrow), Rule("type"), Tok(TokenSemicolon)))

	// attach_decl's "TypeName.TraitName.FnName" attachment convention is
	// realized at the semantic-analysis layer (symbol naming), not in the
	// grammar: syntactically it is just a trait path and a target type.
	r.Define("attach_decl",
		Alt(OptRule("generics"), Tok(TokenAttachKw), Rule("path"), Tok(TokenArrow), Rule("type"),
			Tok(TokenLBrace), Rule("items"), Tok(TokenRBrace)))
}

func defineTypes(r *GrammarRegistry) {
	r.Define("type",
		Alt(Rule("base_type"), OptRule("type_suffixes")))

	r.Define("base_type",
		// `error!type` is tried ahead of `Name!type` ahead of everything
		// else; both wrapper forms would otherwise lose to a bare name.
		Alt(Rule("error_wrapper_type")),
		Alt(Rule("named_error_wrapper")),
		Alt(Rule("primitive_type")),
		Alt(Rule("named_type")),
		Alt(Rule("tuple_type")),
		Alt(Rule("closure_type")))

	r.Define("error_wrapper_type",
		Alt(Tok(TokenErrorKw), Tok(TokenBang), Rule("type")))

	r.Define("named_error_wrapper",
		Alt(Rule("path"), OptRule("generic_args"), Tok(TokenBang), Rule("type")))

	r.Define("primitive_type",
		Alt(Tok(TokenI8Kw)), Alt(Tok(TokenI16Kw)), Alt(Tok(TokenI32Kw)), Alt(Tok(TokenI64Kw)), Alt(Tok(TokenI128Kw)),
		Alt(Tok(TokenU8Kw)), Alt(Tok(TokenU16Kw)), Alt(Tok(TokenU32Kw)), Alt(Tok(TokenU64Kw)), Alt(Tok(TokenU128Kw)),
		Alt(Tok(TokenF16Kw)), Alt(Tok(TokenF32Kw)), Alt(Tok(TokenF64Kw)), Alt(Tok(TokenF128Kw)),
		Alt(Tok(TokenBoolKw)), Alt(Tok(TokenIsizeKw)), Alt(Tok(TokenUsizeKw)),
		Alt(Tok(TokenTypeKw)), Alt(Tok(TokenCstrKw)), Alt(Tok(TokenStrKw)))

	r.Define("named_type",
		Alt(OptTok(TokenBang), Rule("path"), OptRule("generic_args")))

	r.Define("path",
		Alt(Tok(TokenIdentifier), Rule("path_rest")))

	r.Define("path_rest",
		Alt(Tok(TokenColonColon), Tok(TokenIdentifier), Rule("path_rest")),
		Alt())

	r.Define("tuple_type",
		Alt(Tok(TokenLParen), Rule("type_list"), Tok(TokenRParen)))

	r.Define("type_list",
		Alt(Rule("tuple_field"), Rule("type_list_rest")),
		Alt())

	r.Define("type_list_rest",
		Alt(Tok(TokenComma), Rule("tuple_field"), Rule("type_list_rest")),
		Alt())

	r.Define("tuple_field",
		Alt(Tok(TokenIdentifier), Tok(TokenColon), Rule("type")),
		Alt(Rule("type")))

	r.Define("closure_type",
		Alt(Tok(TokenPipe), Rule("closure_params"), Tok(TokenPipe), Tok(TokenArrow), Rule("type")))

	r.Define("closure_params",
		Alt(Rule("type_list")))

	r.Define("type_suffixes",
		Alt(Rule("type_suffix"), Rule("type_suffixes_rest")))

	r.Define("type_suffixes_rest",
		Alt(Rule("type_suffix"), Rule("type_suffixes_rest")),
		Alt())

	// The pointer form `*?` must come ahead of the bare `*` reference, or
	// ordered choice would always take the shorter match and `*?` would
	// parse as a reference suffix followed by an optional suffix.
	r.Define("type_suffix",
		Alt(Tok(TokenStar), Tok(TokenQuestion)),                 // pointer
		Alt(Tok(TokenStar)),                                     // reference
		Alt(Tok(TokenQuestion)),                                 // optional
		Alt(Tok(TokenLBracket), Tok(TokenRBracket)),             // array
		Alt(Tok(TokenLBracket), Tok(TokenDotDot), Tok(TokenRBracket)),   // slice
		Alt(Tok(TokenLBracket), Rule("expression"), Tok(TokenRBracket))) // sized array
}

func defineStatements(r *GrammarRegistry) {
	r.Define("block",
		Alt(Tok(TokenLBrace), Rule("statements"), Tok(TokenRBrace)))

	r.Define("statements",
		Alt(Rule("statement"), Rule("statements_rest")),
		Alt())

	r.Define("statements_rest",
		Alt(Rule("statement"), Rule("statements_rest")),
		Alt())

	r.Define("statement",
		Alt(Rule("var_decl")),
		Alt(Rule("val_decl")),
		Alt(Rule("static_decl")),
		Alt(Rule("return_stmt")),
		Alt(Rule("break_stmt")),
		Alt(Rule("continue_stmt")),
		Alt(Rule("if_stmt")),
		Alt(Rule("defer_stmt")),
		Alt(Rule("while_stmt")),
		Alt(Rule("for_stmt")),
		Alt(Rule("loop_stmt")),
		Alt(Rule("match_stmt")),
		Alt(Rule("suspend_stmt")),
		Alt(Rule("resume_stmt")),
		Alt(Rule("expr_stmt")))

	r.Define("var_decl",
		Alt(OptTok(TokenComptimeKw), Tok(TokenVarKw), Tok(TokenIdentifier), OptTok(TokenColon),
			OptRule("type"), OptTok(TokenEq), OptRule("expression"), Tok(TokenSemicolon)))

	r.Define("val_decl",
		Alt(OptTok(TokenComptimeKw), Tok(TokenValKw), Tok(TokenIdentifier), OptTok(TokenColon),
			OptRule("type"), Tok(TokenEq), Rule("expression"), Tok(TokenSemicolon)))

	r.Define("static_decl",
		Alt(Tok(TokenStaticKw), Tok(TokenIdentifier), Tok(TokenColon), Rule("type"), Tok(TokenEq),
			Rule("expression"), Tok(TokenSemicolon)))

	r.Define("return_stmt",
		Alt(Tok(TokenReturnKw), OptRule("expression"), Tok(TokenSemicolon)))

	r.Define("break_stmt",
		Alt(Tok(TokenBreakKw), OptTok(TokenColon), OptTok(TokenIdentifier), Tok(TokenSemicolon)))

	r.Define("defer_stmt",
		Alt(Tok(TokenDeferKw), Rule("expression"), Tok(TokenSemicolon)))

	r.Define("continue_stmt",
		Alt(Tok(TokenContinueKw), OptTok(TokenColon), OptTok(TokenIdentifier), Tok(TokenSemicolon)))

	r.Define("suspend_stmt",
		Alt(Tok(TokenSuspendKw), Tok(TokenSemicolon)))

	r.Define("resume_stmt",
		Alt(Tok(TokenResumeKw), Rule("expression"), Tok(TokenSemicolon)))

	r.Define("if_stmt",
		Alt(OptTok(TokenComptimeKw), Tok(TokenIfKw), Tok(TokenLParen), Rule("expression"), Tok(TokenRParen),
			Rule("block"), OptTok(TokenElseKw), OptRule("else_clause")))

	r.Define("else_clause",
		Alt(Rule("if_stmt")),
		Alt(Rule("block")))

	r.Define("while_stmt",
		Alt(OptRule("label"), Tok(TokenWhileKw), Tok(TokenLParen), Rule("expression"), Tok(TokenRParen), Rule("block")))

	r.Define("loop_stmt",
		Alt(OptRule("label"), Tok(TokenLoopKw), Rule("block")))

	r.Define("identifier_list",
		Alt(Tok(TokenIdentifier), Rule("identifier_list_rest")))

	r.Define("identifier_list_rest",
		Alt(Tok(TokenComma), Tok(TokenIdentifier), Rule("identifier_list_rest")),
		Alt())

	// for_iterable_expr stops short of bitwise_or so a `| expr |` pre-body
	// capture clause doesn't get swallowed into the iterable expression.
	// The expression between the pipes uses it too, so the closing `|`
	// isn't taken as a bitwise-or with the loop body.
	r.Define("for_iterable_expr",
		Alt(Rule("bitwise_xor_expr")))

	// The loop header may be parenthesized (`for (i in xs)`), in which case
	// the closing paren already bounds the iterable and a full expression is
	// allowed before a `| expr |` clause. Bare headers need the restricted
	// iterable when a pre-expression follows. More specific shapes first.
	r.Define("for_stmt",
		Alt(OptRule("label"), Tok(TokenForKw), Tok(TokenLParen), Rule("for_binding"), Tok(TokenInKw),
			Rule("expression"), Tok(TokenRParen), Rule("for_pre_expr"), OptRule("for_captures"), Rule("block")),
		Alt(OptRule("label"), Tok(TokenForKw), Tok(TokenLParen), Rule("for_binding"), Tok(TokenInKw),
			Rule("expression"), Tok(TokenRParen), OptRule("for_captures"), Rule("block")),
		Alt(OptRule("label"), Tok(TokenForKw), Rule("for_binding"), Tok(TokenInKw),
			Rule("for_iterable_expr"), Rule("for_pre_expr"), OptRule("for_captures"), Rule("block")),
		Alt(OptRule("label"), Tok(TokenForKw), Rule("for_binding"), Tok(TokenInKw),
			Rule("expression"), OptRule("for_captures"), Rule("block")))

	r.Define("for_pre_expr",
		Alt(Tok(TokenPipe), Rule("for_iterable_expr"), Tok(TokenPipe)))

	r.Define("for_binding",
		Alt(Tok(TokenIdentifier)),
		Alt(Tok(TokenLParen), Rule("identifier_list"), Tok(TokenRParen)))

	r.Define("for_captures",
		Alt(Tok(TokenLBracket), Rule("capture_list"), Tok(TokenRBracket)))

	r.Define("capture_list",
		Alt(Rule("capture"), Rule("capture_list_rest")))

	r.Define("capture_list_rest",
		Alt(Tok(TokenComma), Rule("capture"), Rule("capture_list_rest")),
		Alt())

	r.Define("capture",
		Alt(Tok(TokenVarKw), Tok(TokenIdentifier), OptTok(TokenColon), OptRule("type")))

	r.Define("label",
		Alt(Tok(TokenColon), Tok(TokenIdentifier)))

	// "match" is a soft keyword: it has no reserved token, so the word is
	// matched structurally as a bare identifier.
	r.Define("match_stmt",
		Alt(OptTok(TokenComptimeKw), Tok(TokenIdentifier), Rule("expression"), Tok(TokenLBrace),
			Rule("match_arms"), Tok(TokenRBrace)))

	r.Define("match_arms",
		Alt(Rule("match_arm"), Rule("match_arms_rest")))

	r.Define("match_arms_rest",
		Alt(Rule("match_arm"), Rule("match_arms_rest")),
		Alt())

	r.Define("match_arm",
		Alt(Rule("match_pattern"), Tok(TokenFatArrow), Rule("expression"), Tok(TokenSemicolon)),
		Alt(Rule("match_pattern"), Tok(TokenFatArrow), Rule("block"), Tok(TokenSemicolon)),
		Alt(Rule("match_pattern"), Tok(TokenFatArrow), Rule("block")))

	// Likewise "default" is a bare identifier, not a keyword.
	r.Define("match_pattern",
		Alt(Rule("expression")),
		Alt(Tok(TokenIdentifier)))

	r.Define("try_catch",
		Alt(Rule("expression"), Tok(TokenCatchKw), OptTok(TokenPipe), OptTok(TokenIdentifier),
			OptTok(TokenPipe), Rule("block")))

	r.Define("expr_stmt",
		Alt(Rule("expression"), Tok(TokenSemicolon)))
}

// defineExpressions builds the right-recursive "expr"/"expr_rest" ladder
// encoding left-associative operators without left recursion, ordered
// weakest to tightest binding: assignment, logical-or, logical-and,
// bitwise-or, bitwise-xor, bitwise-and, equality, relational, shift, range,
// additive, multiplicative, cast, unary, postfix, primary.
func defineExpressions(r *GrammarRegistry) {
	r.Define("expression",
		Alt(Rule("assignment_expr")))

	r.Define("assignment_expr",
		Alt(Rule("logical_or_expr"), Rule("assignment_expr_rest")))

	r.Define("assignment_expr_rest",
		Alt(Rule("assign_op"), Rule("assignment_expr")),
		Alt())

	r.Define("assign_op",
		Alt(Tok(TokenEq)), Alt(Tok(TokenPlusEq)), Alt(Tok(TokenMinusEq)), Alt(Tok(TokenStarEq)),
		Alt(Tok(TokenSlashEq)), Alt(Tok(TokenPercentEq)), Alt(Tok(TokenAmpEq)), Alt(Tok(TokenPipeEq)),
		Alt(Tok(TokenCaretEq)), Alt(Tok(TokenShlEq)), Alt(Tok(TokenShrEq)))

	r.Define("logical_or_expr",
		Alt(Rule("logical_and_expr"), Rule("logical_or_expr_rest")))
	r.Define("logical_or_expr_rest",
		Alt(Tok(TokenPipePipe), Rule("logical_and_expr"), Rule("logical_or_expr_rest")),
		Alt())

	r.Define("logical_and_expr",
		Alt(Rule("bitwise_or_expr"), Rule("logical_and_expr_rest")))
	r.Define("logical_and_expr_rest",
		Alt(Tok(TokenAmpAmp), Rule("bitwise_or_expr"), Rule("logical_and_expr_rest")),
		Alt())

	r.Define("bitwise_or_expr",
		Alt(Rule("bitwise_xor_expr"), Rule("bitwise_or_expr_rest")))
	r.Define("bitwise_or_expr_rest",
		Alt(Tok(TokenPipe), Rule("bitwise_xor_expr"), Rule("bitwise_or_expr_rest")),
		Alt())

	r.Define("bitwise_xor_expr",
		Alt(Rule("bitwise_and_expr"), Rule("bitwise_xor_expr_rest")))
	r.Define("bitwise_xor_expr_rest",
		Alt(Tok(TokenCaret), Rule("bitwise_and_expr"), Rule("bitwise_xor_expr_rest")),
		Alt())

	r.Define("bitwise_and_expr",
		Alt(Rule("equality_expr"), Rule("bitwise_and_expr_rest")))
	r.Define("bitwise_and_expr_rest",
		Alt(Tok(TokenAmp), Rule("equality_expr"), Rule("bitwise_and_expr_rest")),
		Alt())

	r.Define("equality_expr",
		Alt(Rule("relational_expr"), Rule("equality_expr_rest")))
	r.Define("equality_expr_rest",
		Alt(Tok(TokenEqEq), Rule("relational_expr"), Rule("equality_expr_rest")),
		Alt(Tok(TokenBangEq), Rule("relational_expr"), Rule("equality_expr_rest")),
		Alt())

	r.Define("relational_expr",
		Alt(Rule("shift_expr"), Rule("relational_expr_rest")))
	r.Define("relational_expr_rest",
		Alt(Tok(TokenLAngle), Rule("shift_expr"), Rule("relational_expr_rest")),
		Alt(Tok(TokenRAngle), Rule("shift_expr"), Rule("relational_expr_rest")),
		Alt(Tok(TokenLe), Rule("shift_expr"), Rule("relational_expr_rest")),
		Alt(Tok(TokenGe), Rule("shift_expr"), Rule("relational_expr_rest")),
		Alt())

	r.Define("shift_expr",
		Alt(Rule("range_expr"), Rule("shift_expr_rest")))
	r.Define("shift_expr_rest",
		Alt(Tok(TokenShl), Rule("range_expr"), Rule("shift_expr_rest")),
		Alt(Tok(TokenShr), Rule("range_expr"), Rule("shift_expr_rest")),
		Alt())

	r.Define("range_expr",
		Alt(Rule("additive_expr"), Rule("range_expr_rest")))
	r.Define("range_expr_rest",
		Alt(Tok(TokenDotDot), Rule("additive_expr")),
		Alt(Tok(TokenDotDotEq), Rule("additive_expr")),
		Alt())

	r.Define("additive_expr",
		Alt(Rule("multiplicative_expr"), Rule("additive_expr_rest")))
	r.Define("additive_expr_rest",
		Alt(Tok(TokenPlus), Rule("multiplicative_expr"), Rule("additive_expr_rest")),
		Alt(Tok(TokenMinus), Rule("multiplicative_expr"), Rule("additive_expr_rest")),
		Alt())

	r.Define("multiplicative_expr",
		Alt(Rule("cast_expr"), Rule("multiplicative_expr_rest")))
	r.Define("multiplicative_expr_rest",
		Alt(Tok(TokenStar), Rule("cast_expr"), Rule("multiplicative_expr_rest")),
		Alt(Tok(TokenSlash), Rule("cast_expr"), Rule("multiplicative_expr_rest")),
		Alt(Tok(TokenPercent), Rule("cast_expr"), Rule("multiplicative_expr_rest")),
		Alt())

	r.Define("cast_expr",
		Alt(Rule("unary_expr"), Rule("cast_expr_rest")))
	r.Define("cast_expr_rest",
		Alt(Tok(TokenAsKw), Rule("type")),
		Alt())

	r.Define("unary_expr",
		Alt(Rule("postfix_expr")),
		Alt(Rule("unary_op"), Rule("unary_expr")),
		Alt(Tok(TokenTryKw), Rule("unary_expr")))

	r.Define("unary_op",
		Alt(Tok(TokenMinus)), Alt(Tok(TokenBang)), Alt(Tok(TokenTilde)), Alt(Tok(TokenStar)),
		Alt(Tok(TokenAmp)), Alt(Tok(TokenPlusPlus)), Alt(Tok(TokenMinusMinus)),
		Alt(Tok(TokenMoveKw)), Alt(Tok(TokenCopyKw)))

	r.Define("postfix_expr",
		Alt(Rule("primary_expr"), Rule("postfix_expr_rest")))
	r.Define("postfix_expr_rest",
		Alt(Rule("postfix_op"), Rule("postfix_expr_rest")),
		Alt())

	r.Define("postfix_op",
		Alt(Rule("call")),
		Alt(Rule("index")),
		Alt(Rule("member_access")),
		Alt(Tok(TokenPlusPlus)),
		Alt(Tok(TokenMinusMinus)),
		Alt(Rule("catch_clause")))

	r.Define("catch_clause",
		Alt(Tok(TokenCatchKw), OptTok(TokenPipe), OptTok(TokenIdentifier), OptTok(TokenPipe), Rule("block")))

	r.Define("call",
		Alt(OptRule("generic_args"), Tok(TokenLParen), Rule("args"), Tok(TokenRParen)))

	r.Define("args",
		Alt(Rule("expression"), Rule("args_rest")),
		Alt())

	r.Define("args_rest",
		Alt(Tok(TokenComma), Rule("expression"), Rule("args_rest")),
		Alt())

	r.Define("index",
		Alt(Tok(TokenLBracket), Rule("expression"), Tok(TokenRBracket)))

	r.Define("member_access",
		Alt(Tok(TokenDot), Tok(TokenIdentifier)),
		Alt(Tok(TokenDot), Tok(TokenNumber)), // tuple field access: x.0
		Alt(Tok(TokenArrow), Tok(TokenIdentifier)),
		Alt(Tok(TokenColonColon), Tok(TokenIdentifier)))

	r.Define("primary_expr",
		Alt(Tok(TokenIdentifier)),
		Alt(Rule("literal")),
		Alt(Tok(TokenThisKw)),
		Alt(Rule("builtin")),
		Alt(Rule("paren_expr")),
		Alt(Rule("struct_literal")),
		Alt(Rule("array_literal")),
		Alt(Rule("closure")),
		Alt(Rule("error_literal")),
		Alt(Rule("generic_call")),
		Alt(Rule("for_stmt")), // for-loops double as expressions
		Alt(Rule("type_scoped_call")),
		Alt(Rule("primitive_type"))) // bare type literal, e.g. "return i32;"

	r.Define("type_scoped_call",
		Alt(Rule("primitive_type"), Tok(TokenColonColon), Tok(TokenIdentifier), OptRule("generic_args"),
			Tok(TokenLParen), Rule("args"), Tok(TokenRParen)))

	r.Define("literal",
		Alt(Tok(TokenNumber)),
		Alt(Tok(TokenString)),
		Alt(Tok(TokenTrueKw)),
		Alt(Tok(TokenFalseKw)),
		Alt(Tok(TokenNullKw)))

	r.Define("builtin",
		Alt(Tok(TokenAt), Tok(TokenIdentifier), Tok(TokenLParen), Rule("args"), Tok(TokenRParen)),
		Alt(Tok(TokenAt), Tok(TokenIdentifier), Tok(TokenLAngle), Rule("type"), Tok(TokenRAngle),
			Tok(TokenLParen), Rule("args"), Tok(TokenRParen)))

	r.Define("paren_expr",
		Alt(Tok(TokenLParen), Rule("expression"), Tok(TokenRParen)))

	r.Define("struct_literal",
		Alt(Tok(TokenLBrace), Rule("field_inits"), Tok(TokenRBrace)))

	r.Define("field_inits",
		Alt(Rule("field_init"), Rule("field_inits_rest")),
		Alt())

	r.Define("field_inits_rest",
		Alt(Tok(TokenComma), Rule("field_init"), Rule("field_inits_rest")),
		Alt())

	r.Define("field_init",
		Alt(Tok(TokenIdentifier), OptTok(TokenColon), OptRule("expression")))

	r.Define("array_literal",
		Alt(Tok(TokenLBracket), Rule("array_elements"), Tok(TokenRBracket)),
		Alt(Tok(TokenLBrace), Rule("array_elements"), Tok(TokenRBrace))) // C-style brace form

	r.Define("array_elements",
		Alt(Rule("expression"), Rule("array_elements_rest")),
		Alt())

	r.Define("array_elements_rest",
		Alt(Tok(TokenComma), Rule("expression"), Rule("array_elements_rest")),
		Alt())

	r.Define("closure",
		Alt(Tok(TokenPipe), Rule("closure_captures"), Tok(TokenPipe), OptTok(TokenLParen),
			OptRule("params"), OptTok(TokenRParen), Rule("block")))

	r.Define("closure_captures",
		Alt(Rule("closure_capture"), Rule("closure_captures_rest")),
		Alt())

	r.Define("closure_captures_rest",
		Alt(Tok(TokenComma), Rule("closure_capture"), Rule("closure_captures_rest")),
		Alt())

	r.Define("closure_capture",
		Alt(Tok(TokenIdentifier), OptTok(TokenStar)))

	r.Define("error_literal",
		Alt(Rule("path"), Tok(TokenColonColon), Tok(TokenIdentifier), OptTok(TokenLParen),
			OptRule("expression"), OptTok(TokenRParen)),
		Alt(Tok(TokenErrorKw)))

	r.Define("generic_call",
		Alt(Tok(TokenIdentifier), Rule("generic_args"), Rule("call")))
}
