package test

import (
	"math/rand"
	"strings"
)

// validTokens is a pool of small, syntactically-plausible Volt fragments
// spanning every lexical category: literals, identifiers, keywords,
// punctuation, and comments. The keywords and operators are a sample of
// what the lexer recognizes, not the full set.
const validTokens = "fn;main;(;);{;};->;=>;::;..;..=;<<;>>;<=;>=;==;!=;&&;||;+=;-=;*=;/=;\"a string\";\"\";123;4.5;321;var;val;struct;enum;trait;match;if;else;for;while;loop;return;break;continue;true;false;null;as;in;try;catch;+;-;*;/;%;^;~;@;#;$;_;:;,;.;?;//line comment\n;/*block comment*/;\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
