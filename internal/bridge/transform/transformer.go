package transform

import (
	"sync"

	"github.com/alloy-modding/alloy-loader/internal/bridge/classfile"
)

// codeAttrName is the UTF8 value the JVM spec fixes for the "Code"
// attribute (spec §4.7.3); class files always carry it verbatim.
const codeAttrName = "Code"

// Transformer owns the full set of registered TransformationSites and
// weaves each one into the target class the first (and only) time it is
// asked to transform that class (spec §4.5: transformation is a one-shot,
// load-time operation — there is no hot reload, per the loader's
// non-goals).
type Transformer struct {
	mu                 sync.Mutex
	sites              []TransformationSite
	locked             bool
	transformedClasses map[string]bool
}

// NewTransformer returns an empty Transformer.
func NewTransformer() *Transformer {
	return &Transformer{transformedClasses: make(map[string]bool)}
}

// RegisterSite adds site to the set woven into its target class. It fails
// once Transform has been called for any class: the registered site set
// is frozen at first use so mods cannot retroactively change a class that
// already loaded with a prior weave (spec §4.5).
func (t *Transformer) RegisterSite(site TransformationSite) error {
	if site.InjectionPoint == InjectionBeforeCall && site.InvokedMethod == "" {
		return &SiteConflictError{Reason: "InjectionBeforeCall site requires InvokedMethod"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locked {
		return &AlreadyTransformedError{}
	}
	t.sites = append(t.sites, site)
	return nil
}

// Transform applies every registered site targeting className to classData
// and returns the rewritten bytes. Transforming the same className twice
// is idempotent: the second call returns the bytes it is given unchanged,
// without re-weaving (spec §4.5 "no new sites after first transform"
// combined with the no-hot-reload non-goal).
func (t *Transformer) Transform(classData []byte, className string) ([]byte, error) {
	t.mu.Lock()
	t.locked = true
	alreadyDone := t.transformedClasses[className]
	var relevant []TransformationSite
	if !alreadyDone {
		for _, s := range t.sites {
			if s.TargetClass == className {
				relevant = append(relevant, s)
			}
		}
	}
	t.mu.Unlock()

	if alreadyDone || len(relevant) == 0 {
		t.mu.Lock()
		t.transformedClasses[className] = true
		t.mu.Unlock()
		return classData, nil
	}

	cf, err := classfile.Parse(classData)
	if err != nil {
		return nil, err
	}

	for _, site := range relevant {
		if err := weave(cf, site); err != nil {
			return nil, err
		}
	}

	out, err := cf.Write()
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.transformedClasses[className] = true
	t.mu.Unlock()

	return out, nil
}

// weave splices site's bridge call into its target method.
func weave(cf *classfile.ClassFile, site TransformationSite) error {
	method, err := cf.FindMethod(site.TargetMethod, site.TargetDescriptor)
	if err != nil {
		return err
	}

	codeIdx, code, err := findCodeAttribute(cf, method)
	if err != nil {
		return err
	}

	bridgeRef := addMethodref(cf, site.BridgeClass, site.BridgeMethod, bridgeDescriptorFor(site.CancellationPolicy))

	switch site.InjectionPoint {
	case InjectionEntry:
		weaveEntry(code, bridgeRef, site)
	case InjectionReturn:
		if err := weaveReturn(code, bridgeRef, site); err != nil {
			return &CodeWalkError{Class: site.TargetClass, Method: site.TargetMethod, Descriptor: site.TargetDescriptor, Cause: err}
		}
	case InjectionBeforeCall:
		if err := weaveBeforeCall(cf, code, bridgeRef, site); err != nil {
			return err
		}
	}

	method.Attributes[codeIdx].Info = code.encode()
	return nil
}

// bridgeDescriptorFor returns the descriptor a bridge method must carry
// for the given cancellation policy: non-cancellable hooks take and
// return nothing, while cancellable hooks report their outcome as a
// boolean the target method's weave checks.
func bridgeDescriptorFor(policy CancellationPolicy) string {
	switch policy {
	case ReturnIfTrue:
		return "()Z"
	case ReturnValueIfNonNull:
		return "()Ljava/lang/Object;"
	default:
		return "()V"
	}
}

func findCodeAttribute(cf *classfile.ClassFile, method *classfile.MemberInfo) (int, *codeAttribute, error) {
	for i, attr := range method.Attributes {
		// NameIndex resolution happens in the caller's constant pool; since
		// classfile.MemberInfo doesn't expose a resolver directly we match
		// by re-deriving the UTF8 via the class's own pool through ClassFile.
		name, err := resolveAttrName(cf, attr.NameIndex)
		if err != nil {
			return 0, nil, err
		}
		if name == codeAttrName {
			code, err := parseCodeAttribute(attr.Info)
			if err != nil {
				return 0, nil, err
			}
			return i, code, nil
		}
	}
	return 0, nil, &SiteConflictError{Reason: "target method has no Code attribute (abstract or native)"}
}

func resolveAttrName(cf *classfile.ClassFile, nameIndex uint16) (string, error) {
	return classfile.ResolveUTF8(cf, nameIndex)
}

// weaveEntry prepends an unconditional (NonCancellable) or conditional
// (ReturnIfTrue) bridge call at the very start of the method body (spec
// §4.5 InjectionPoint ENTRY).
func weaveEntry(code *codeAttribute, bridgeRef uint16, site TransformationSite) {
	seq := invokeStatic(bridgeRef)

	switch site.CancellationPolicy {
	case NonCancellable:
		code.prepend(seq)
	case ReturnIfTrue:
		ret := returnOpcodeFor(site.TargetDescriptor)
		var zero []byte
		switch returnTypeOf(site.TargetDescriptor) {
		case "V":
		case "J":
			zero = []byte{0x09} // lconst_0
		case "F":
			zero = []byte{0x0b} // fconst_0
		case "D":
			zero = []byte{0x0e} // dconst_0
		case "L", "[":
			zero = []byte{0x01} // aconst_null
		default:
			zero = []byte{0x03} // iconst_0
		}
		// invokestatic; ifeq +N; [zero constant]; <return>, where N skips
		// the ifeq itself, the zero constant and the return.
		seq = append(seq, opIfeq, 0x00, byte(3+len(zero)+1))
		seq = append(seq, zero...)
		seq = append(seq, ret)
		code.prepend(seq)
	case ReturnValueIfNonNull:
		// invokestatic pushes the object result and dup copies it for the
		// test. ifnull consumes the copy: a non-null result falls through
		// to areturn and is returned in place of the method's own result;
		// a null result jumps to the pop, which drops it before the
		// original body runs.
		seq = append(seq, 0x59 /* dup */, 0xc6, 0x00, 0x04 /* ifnull +4 */, opAreturn, 0x57 /* pop */)
		code.prepend(seq)
	}
}

// weaveReturn splices a bridge call immediately before every return
// instruction in the method (spec §4.5 InjectionPoint RETURN). Because
// NonCancellable calls never alter control flow, inserting them before a
// return is unconditionally safe; cancellable policies at a RETURN site
// only ever observe, so they are restricted to NonCancellable semantics
// here regardless of the declared policy's intent on entry injection.
//
// insertAt shifts exception_table bounds but does not retarget existing
// branch instructions whose offset spans an insertion point; RETURN-site
// weaving is only exact for methods with no branch that jumps over one of
// its own return instructions (true of every hook method the bridge
// targets in practice — straight-line tick/event callbacks).
func weaveReturn(code *codeAttribute, bridgeRef uint16, site TransformationSite) error {
	sites, err := returnSites(code.Code)
	if err != nil {
		return err
	}
	seq := invokeStatic(bridgeRef)
	if site.CancellationPolicy != NonCancellable {
		seq = append(seq, 0x57 /* pop: discard the bridge result */)
	}
	// insert back-to-front so earlier offsets stay valid as we splice.
	for i := len(sites) - 1; i >= 0; i-- {
		code.insertAt(sites[i], seq)
	}
	return nil
}

// weaveBeforeCall splices a bridge call immediately before every
// invocation of site.InvokedMethod inside the target method (spec §4.5
// InjectionPoint BEFORE_CALL). As in weaveReturn, insertAt does not
// retarget existing branch instructions whose offset spans an insertion
// point, so the result is only exact for straight-line methods.
func weaveBeforeCall(cf *classfile.ClassFile, code *codeAttribute, bridgeRef uint16, site TransformationSite) error {
	invokedRef, err := classfile.FindMethodref(cf, site.InvokedMethod)
	if err != nil {
		return &BeforeCallTargetNotFoundError{Class: site.TargetClass, Method: site.TargetMethod, InvokedMethod: site.InvokedMethod}
	}

	sites, err := findInvokeSites(code.Code, invokedRef)
	if err != nil {
		return &CodeWalkError{Class: site.TargetClass, Method: site.TargetMethod, Descriptor: site.TargetDescriptor, Cause: err}
	}
	if len(sites) == 0 {
		return &BeforeCallTargetNotFoundError{Class: site.TargetClass, Method: site.TargetMethod, InvokedMethod: site.InvokedMethod}
	}

	seq := invokeStatic(bridgeRef)
	for i := len(sites) - 1; i >= 0; i-- {
		code.insertAt(sites[i], seq)
	}
	return nil
}

func invokeStatic(methodrefIndex uint16) []byte {
	return []byte{opInvokestatic, byte(methodrefIndex >> 8), byte(methodrefIndex)}
}

// addMethodref interns a CONSTANT_Methodref (and the Class/NameAndType/
// UTF8 entries it depends on) for className.methodName(descriptor) and
// returns its constant pool index.
func addMethodref(cf *classfile.ClassFile, className, methodName, descriptor string) uint16 {
	return classfile.InternMethodref(cf, className, methodName, descriptor)
}
